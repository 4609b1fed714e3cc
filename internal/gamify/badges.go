package gamify

import mapset "github.com/deckarep/golang-set/v2"

// Badge display metadata, mirroring the backend's badge rules. Badges are
// awarded server-side; unknown codes render with a generic label.
type Badge struct {
	Code  string
	Label string
	Desc  string
	Icon  string
}

var badges = map[string]Badge{
	"first_application": {Code: "first_application", Label: "First Step", Desc: "Sent your first application", Icon: "🚀"},
	"five_applications": {Code: "five_applications", Label: "On a Roll", Desc: "Applied to 5 jobs", Icon: "⚡"},
	"ten_applications":  {Code: "ten_applications", Label: "Committed", Desc: "Applied to 10 jobs", Icon: "🎯"},
	"first_interview":   {Code: "first_interview", Label: "Interview Ready", Desc: "Landed first interview", Icon: "⭐"},
	"first_offer":       {Code: "first_offer", Label: "Offer Received", Desc: "Got a job offer!", Icon: "🏆"},
	"pdf_parser":        {Code: "pdf_parser", Label: "Smart Applier", Desc: "Used PDF auto-parse", Icon: "✨"},
	"interview_mode":    {Code: "interview_mode", Label: "Interview Pro", Desc: "Completed mock interview", Icon: "🎤"},
	"url_scraper":       {Code: "url_scraper", Label: "Link Hunter", Desc: "Imported a job from URL", Icon: "🔗"},
}

func BadgeMeta(code string) Badge {
	if b, ok := badges[code]; ok {
		return b
	}
	return Badge{Code: code, Label: code, Icon: "🏅"}
}

// NewBadges returns badge codes present in current but not in previous.
// Used after mutations that can earn badges, to announce them.
func NewBadges(previous, current []string) []string {
	prev := mapset.NewSet(previous...)
	cur := mapset.NewSet(current...)
	diff := cur.Difference(prev)
	return diff.ToSlice()
}
