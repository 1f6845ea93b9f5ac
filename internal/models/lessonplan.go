package models

import (
	"fmt"
	"strings"
	"time"
)

// BloomsTaxonomyLevels are the cognitive levels a lesson plan can target.
var BloomsTaxonomyLevels = []string{
	"Remember",
	"Understand",
	"Apply",
	"Analyze",
	"Evaluate",
	"Create",
}

// AQFLevels are the Australian Qualifications Framework levels supported
// for lesson plan generation.
var AQFLevels = []string{
	"AQF Level 1 - Certificate I",
	"AQF Level 2 - Certificate II",
	"AQF Level 3 - Certificate III",
	"AQF Level 4 - Certificate IV",
	"AQF Level 5 - Diploma",
	"AQF Level 6 - Advanced Diploma/Associate Degree",
	"AQF Level 7 - Bachelor Degree",
	"AQF Level 8 - Bachelor Honours/Graduate Certificate/Graduate Diploma",
	"AQF Level 9 - Masters Degree",
	"AQF Level 10 - Doctoral Degree",
}

// LessonDurations are the accepted lesson lengths.
var LessonDurations = []string{
	"30 minutes",
	"45 minutes",
	"1 hour",
	"1.5 hours",
	"2 hours",
	"2.5 hours",
	"3 hours",
}

// LessonPlanRequest captures the parameters a lesson plan is generated
// from. FocusTopic is optional; empty means general coverage of the topic.
type LessonPlanRequest struct {
	SubjectName    string `json:"subject_name" binding:"required,max=255"`
	LectureTopic   string `json:"lecture_topic" binding:"required,max=255"`
	FocusTopic     string `json:"focus_topic" binding:"max=255"`
	BloomsTaxonomy string `json:"blooms_taxonomy" binding:"required"`
	AQFLevel       string `json:"aqf_level" binding:"required"`
	LessonDuration string `json:"lesson_duration" binding:"required"`
}

// Validate checks the closed-set fields against the supported options.
func (r *LessonPlanRequest) Validate() error {
	if !isOneOf(r.BloomsTaxonomy, BloomsTaxonomyLevels) {
		return fmt.Errorf("blooms_taxonomy must be one of: %s", strings.Join(BloomsTaxonomyLevels, ", "))
	}
	if !isOneOf(r.AQFLevel, AQFLevels) {
		return fmt.Errorf("aqf_level %q is not a supported AQF level", r.AQFLevel)
	}
	if !isOneOf(r.LessonDuration, LessonDurations) {
		return fmt.Errorf("lesson_duration must be one of: %s", strings.Join(LessonDurations, ", "))
	}
	return nil
}

func isOneOf(value string, options []string) bool {
	for _, opt := range options {
		if value == opt {
			return true
		}
	}
	return false
}

// LessonPlan is a generated plan together with the request that produced it.
type LessonPlan struct {
	ID          string            `json:"id"`
	RequestData LessonPlanRequest `json:"request_data"`
	Content     string            `json:"content"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// LessonPlanOptions lists the accepted values for each closed request field.
type LessonPlanOptions struct {
	BloomsTaxonomy  []string `json:"blooms_taxonomy"`
	AQFLevels       []string `json:"aqf_levels"`
	LessonDurations []string `json:"lesson_durations"`
}

// DefaultLessonPlanOptions returns the option sets served to clients.
func DefaultLessonPlanOptions() LessonPlanOptions {
	return LessonPlanOptions{
		BloomsTaxonomy:  BloomsTaxonomyLevels,
		AQFLevels:       AQFLevels,
		LessonDurations: LessonDurations,
	}
}
