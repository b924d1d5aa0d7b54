package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeParserService extracts plain text from an uploaded resume so the
// panel can show a preview without opening the file.
type ResumeParserService interface {
	ExtractResume(filePath string) (*ResumeContent, error)
}

type ResumeContent struct {
	Text      string
	PageCount int
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

func (p *resumeParserService) ExtractResume(filePath string) (*ResumeContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &ResumeContent{
		Text:      text,
		PageCount: totalPage,
	}, nil
}

// CleanText trims each line and drops empty ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}
	return strings.Join(cleanedLines, "\n")
}
