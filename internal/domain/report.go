package domain

import "time"

// MissingSampleSize caps the number of missing identifiers listed in a report.
const MissingSampleSize = 10

// Report is the batch summary written at the end of a run.
type Report struct {
	RunID         string          `json:"run_id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	TotalDesired  int             `json:"total_desired"`
	FoundFiles    int             `json:"found_files"`
	Missing       int             `json:"missing"`
	MissingSample []ArticleID     `json:"missing_sample"`
	Processed     int             `json:"processed"`
	Redirects     int             `json:"redirects"`
	Errors        int             `json:"errors"`
	TotalImages   int             `json:"total_images"`
	CopiedImages  int             `json:"copied_images"`
	Articles      []ArticleRecord `json:"articles"`
}

// ArticleRecord is the per-article entry of a Report.
type ArticleRecord struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	SizeBytes  int      `json:"size_bytes"`
	IsRedirect bool     `json:"is_redirect"`
	Processed  bool     `json:"processed"`
	Images     []string `json:"images"`
	ImageCount int      `json:"image_count"`
	Error      string   `json:"error"`
}

// ToRecord converts an ArticleResult to its report representation.
func (r ArticleResult) ToRecord() ArticleRecord {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return ArticleRecord{
		Name:       r.ID,
		Title:      r.Title,
		SizeBytes:  r.Size,
		IsRedirect: r.IsRedirect,
		Processed:  r.Processed,
		Images:     images,
		ImageCount: len(images),
		Error:      r.Error,
	}
}
