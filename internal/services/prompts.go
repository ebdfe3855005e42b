package services

import "fmt"

const outlineInstruction = `You are an expert course creator. The user will give you a topic. You must generate a highly structured course outline. Return ONLY raw, valid JSON. Do not use Markdown, do not use backticks like ` + "```json" + `, and do not add any conversational text.
The JSON must follow this exact schema:
{
"title": "Course Title",
"description": "Short description",
"tags": ["tag1", "tag2"],
"modules": [
{
"title": "Module 1 Title",
"lessons": ["Lesson 1 Title", "Lesson 2 Title"]
}
]
}
Every module must contain at least one lesson.`

const lessonInstruction = `You are an expert teacher. Generate detailed lesson content for the lesson title provided. Return ONLY raw, valid JSON. Do not use Markdown, do not use backticks, and do not add conversational text.
The JSON must be an array of objects representing content blocks.
Allowed block types:

{"type": "heading", "text": "Heading text"}

{"type": "paragraph", "text": "Detailed explanation"}

{"type": "code", "language": "python", "text": "print(\"Hello\")"}

{"type": "video", "query": "Highly specific YouTube search query for this topic"}

{"type": "mcq", "question": "Question?", "options": ["A", "B", "C", "D"], "answer": 1, "explanation": "Why this is correct"}

Include at least one of each block type. Generate 4 MCQs at the end. The "answer" field is the zero-based index of the correct option.`

// lessonPrompt builds the user content for lesson enrichment
func lessonPrompt(courseTitle, moduleTitle, lessonTitle, language string) string {
	return fmt.Sprintf(
		"Course: %s\nModule: %s\nLesson: %s\nLanguage: %s\n\n"+
			"Please generate the detailed lesson content block array based on these details. "+
			"The entire explanation, text, and MCQ questions/answers MUST be written fluently in %s "+
			"(Code blocks must remain valid programming syntax, but the comments and explanations around them should be in %s).",
		courseTitle, moduleTitle, lessonTitle, language, language, language,
	)
}

// translationInstruction builds the system instruction for narration translation
func translationInstruction(targetLanguage string) string {
	return fmt.Sprintf(
		"You are an expert educational translator. Translate the provided English lesson text into %s. "+
			"The translation must be contextually aware and designed to assist students with partial English fluency. "+
			"If Hinglish, use a natural mix of Hindi written in Latin script and English terms. "+
			"Return ONLY the translated string.",
		targetLanguage,
	)
}
