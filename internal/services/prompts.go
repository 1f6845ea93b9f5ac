package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// maxPromptDocumentRunes bounds how much extracted PDF text is embedded in
// the extraction prompt. Text beyond the prefix is never sent to the model.
const maxPromptDocumentRunes = 8000

const extractionPromptTemplate = `Analyze the following academic subject outline PDF content and extract the required information in JSON format.

PDF Content:
%s

Please extract and return ONLY a JSON object with the following structure:
{
    "subject_names": ["list of subject names found"],
    "lecture_topics": ["list of lecture topics from timetable of activities"],
    "lecture_focus_mapping": {
        "Lecture Topic 1": ["focus topic 1.1", "focus topic 1.2"],
        "Lecture Topic 2": ["focus topic 2.1", "focus topic 2.2"],
        "etc": ["etc"]
    }
}

Instructions:
1. Look for subject names in headers, titles, or course information
2. Find lecture topics in the timetable of activities section
3. For each lecture topic, identify its corresponding focus topics (subtopics/subdivisions mentioned for that specific lecture/week)
4. Create a mapping where each lecture topic maps to its specific focus topics only
5. If a lecture topic has no specific focus topics, map it to an empty array []
6. Return clean, readable names without extra formatting
7. Return ONLY the JSON object, no other text`

const generationPromptTemplate = `Create a detailed lesson plan based on the following parameters:

Subject: %s
Lecture Topic: %s
Focus Topic: %s
Bloom's Taxonomy Level: %s
AQF Level: %s
Duration: %s

Please create a comprehensive lesson plan with professional formatting. Use proper headings, bullet points, and structure. DO NOT use markdown symbols like #, *, or other formatting characters. Format it as follows:

LEARNING OBJECTIVES
- Clear, measurable objectives aligned with the %s level of Bloom's taxonomy

LEARNING OUTCOMES
- What students will achieve, appropriate for %s

PRE-REQUISITES
- Required knowledge or skills

MATERIALS AND RESOURCES
- What's needed for the lesson

LESSON STRUCTURE (%s)

Introduction/Hook (X minutes)
- Engage students activities

Main Content Delivery (X minutes)
- Explanation and demonstration activities

Active Learning Activities (X minutes)
- Hands-on, discussion, and practice activities

Assessment/Evaluation (X minutes)
- Formative assessment aligned with Bloom's level

Conclusion/Summary (X minutes)
- Wrap-up activities

ASSESSMENT CRITERIA
- How student understanding will be measured

EXTENSION ACTIVITIES
- For advanced students

DIFFERENTIATION STRATEGIES
- For diverse learning needs

Focus Area: %s

Ensure the content is:
- Age and level appropriate for %s
- %s
- Designed to achieve %s level cognitive skills
- Realistic for the %s timeframe
- Engaging and interactive
- Professionally formatted without markdown symbols

Format the response as clean, professional text with clear section headings in ALL CAPS and proper bullet points using hyphens.`

// BuildExtractionPrompt renders the curriculum-extraction prompt around the
// document text, truncated to its first 8000 characters.
func BuildExtractionPrompt(documentText string) string {
	return fmt.Sprintf(extractionPromptTemplate, truncateRunes(documentText, maxPromptDocumentRunes))
}

// BuildGenerationPrompt renders the lesson-plan generation prompt for a
// validated request. An empty focus topic widens the prompt to general
// coverage of the lecture topic.
func BuildGenerationPrompt(req *models.LessonPlanRequest) string {
	focusDisplay := req.FocusTopic
	focusArea := fmt.Sprintf("Emphasize %s within the broader %s context", req.FocusTopic, req.LectureTopic)
	contentScope := fmt.Sprintf("Focused specifically on '%s'", req.FocusTopic)
	if req.FocusTopic == "" {
		focusDisplay = "General coverage of the lecture topic"
		focusArea = fmt.Sprintf("Provide comprehensive coverage of %s", req.LectureTopic)
		contentScope = fmt.Sprintf("Comprehensively covering '%s'", req.LectureTopic)
	}

	return fmt.Sprintf(generationPromptTemplate,
		req.SubjectName,
		req.LectureTopic,
		focusDisplay,
		req.BloomsTaxonomy,
		req.AQFLevel,
		req.LessonDuration,
		req.BloomsTaxonomy,
		req.AQFLevel,
		req.LessonDuration,
		focusArea,
		req.AQFLevel,
		contentScope,
		req.BloomsTaxonomy,
		req.LessonDuration,
	)
}

// truncateRunes returns at most limit runes of s. Truncation counts code
// points, not bytes, so multi-byte text is never cut mid-character.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
