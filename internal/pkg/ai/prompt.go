package ai

import (
	"fmt"
	"strings"
)

// joinInterests 拼接兴趣列表，为空时退化为 general knowledge
func joinInterests(interests []string) string {
	if len(interests) == 0 {
		return "general knowledge"
	}
	return strings.Join(interests, ", ")
}

func buildExplanationPrompt(topic, interestsText string) string {
	return fmt.Sprintf(`You are an expert educator creating personalized learning content. The learner is interested in: %s.

Topic to explain: "%s"

Create a comprehensive, engaging explanation with the following sections:

1. SIMPLE EXPLANATION (2-3 sentences): Clear, concise overview anyone can understand.

2. PERSONALIZED ANALOGY: Connect this topic to the learner's interests (%s) in a natural, accurate way that genuinely illuminates the concept.

3. STEP-BY-STEP BREAKDOWN: Break down the concept into 4-5 digestible steps.

4. VISUAL MENTAL MODEL: Describe a clear mental image or diagram that represents this concept (what to visualize).

5. DEEPER DIVE: More detailed explanation for those wanting to understand the nuances and complexities (2-3 paragraphs).

6. REAL-WORLD APPLICATIONS: List 3-4 concrete examples of how this applies in everyday life or professional settings.

7. PRACTICE QUESTIONS: Create 3 thought-provoking questions that help reinforce understanding.

8. MINI QUIZ: Create 3 multiple-choice questions with 4 options each. Mark the correct answer.

Format your response as a valid JSON object with this exact structure:
{
  "simple": "...",
  "analogy": "...",
  "stepByStep": ["step 1", "step 2", ...],
  "visualModel": "...",
  "deeperDive": "...",
  "realWorld": ["example 1", "example 2", ...],
  "practiceQuestions": ["question 1", "question 2", "question 3"],
  "quiz": [
    {
      "question": "...",
      "options": ["A. ...", "B. ...", "C. ...", "D. ..."],
      "correctAnswer": 0
    },
    ...
  ]
}

Use a clear, engaging tone appropriate for curious learners of all ages.`, interestsText, topic, interestsText)
}

func buildFollowUpPrompt(question, contextText, interestsText string) string {
	contextBlock := ""
	if contextText != "" {
		contextBlock = fmt.Sprintf("\n\nContext from previous explanation: %s", contextText)
	}

	return fmt.Sprintf(`You are a helpful tutor answering a follow-up question. The learner is interested in: %s.%s

Follow-up question: "%s"

Provide a clear, personalized answer that:
- Directly addresses their question
- Uses examples related to their interests when relevant
- Is encouraging and builds curiosity
- Is 2-4 paragraphs long

Answer naturally and conversationally. Do not use any special formatting or JSON.`, interestsText, contextBlock, question)
}
