package models

import "time"

// CurriculumExtraction is the structured curriculum data mined from an
// uploaded PDF. Slices and the mapping are always non-nil so the JSON
// rendering stays [] / {} rather than null.
type CurriculumExtraction struct {
	ID                  string              `json:"id"`
	Filename            string              `json:"filename"`
	SubjectNames        []string            `json:"subject_names"`
	LectureTopics       []string            `json:"lecture_topics"`
	LectureFocusMapping map[string][]string `json:"lecture_focus_mapping"`
	ExtractedAt         time.Time           `json:"extracted_at"`
}

// Normalize replaces nil collections with empty ones.
func (e *CurriculumExtraction) Normalize() {
	if e.SubjectNames == nil {
		e.SubjectNames = []string{}
	}
	if e.LectureTopics == nil {
		e.LectureTopics = []string{}
	}
	if e.LectureFocusMapping == nil {
		e.LectureFocusMapping = map[string][]string{}
	}
}
