package api

import (
	"context"
	"net/http"
	"strings"
)

// ScrapeJob asks the backend to fetch a job posting URL and extract its
// fields. The heavy lifting (fetching, parsing, AI extraction) is server-side.
func (c *Client) ScrapeJob(ctx context.Context, url string) (*ScrapedJob, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http") {
		return nil, &ValidationError{Msg: "url must start with http"}
	}
	var out ScrapedJob
	err := c.authed(func() error {
		return c.do(ctx, http.MethodPost, "/scrape-job", map[string]string{"url": url}, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ParsePDF uploads a job-posting PDF for field extraction.
func (c *Client) ParsePDF(ctx context.Context, filename string, content []byte) (*ScrapedJob, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, &ValidationError{Msg: "only PDF files supported"}
	}
	var out ScrapedJob
	if err := c.postMultipart(ctx, "/parse-pdf", "file", filename, content, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeResume scores a resume PDF against a job description.
func (c *Client) AnalyzeResume(ctx context.Context, filename string, content []byte, jobDescription string) (*ResumeAnalysis, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, &ValidationError{Msg: "only PDF files supported"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Msg: "job description is required"}
	}
	fields := map[string]string{"job_description": jobDescription}
	var out ResumeAnalysis
	if err := c.postMultipart(ctx, "/resume/analyze", "file", filename, content, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
