package llm

import "fmt"

func curatePrompt(title, description string) string {
	return fmt.Sprintf(`Analyze this Korean economic news article and score its market impact from 0-10:

Title: %q
Description: %q

Economic Impact Scoring:
- 9-10: Market-moving events (interest rate changes, major policy shifts, economic crisis, corporate scandals)
- 7-8: Significant economic developments (GDP data, inflation reports, major M&A, trade agreements)
- 5-6: Notable economic news (corporate earnings, sector updates, minor policy changes)
- 3-4: Routine economic news (regular economic indicators, minor corporate news)
- 1-2: Low-impact economic news (minor announcements, non-market moving events)

Economic Analysis Factors:
- Market impact potential (stocks, bonds, currency)
- Economic policy implications
- Corporate and industry effects
- International trade/economic relations
- Monetary policy relevance
- Financial sector impact

Respond with ONLY a valid JSON object (no markdown, no code blocks, no additional text):
{
  "score": [0-10],
  "reason": "Brief explanation of market impact",
  "category": "monetary|markets|currency|realestate|trade|corporate|banking|policy|international|other",
  "urgency": "low|medium|high|breaking",
  "topics": ["economic_topic1", "economic_topic2", "economic_topic3"]
}`, title, description)
}

func translatePrompt(text string) string {
	return fmt.Sprintf(`Translate the following Korean news text to English. Keep the translation natural and readable while maintaining the original meaning. If the text is already in English, return it as is.

Text: %q

Respond with only the English translation, no additional text or explanations.`, text)
}

func translateArticlePrompt(text string) string {
	return fmt.Sprintf(`Translate and reformat the following Korean economic news article to English. Make it well-structured, natural, and easy to read for English speakers.

Requirements:
- Clean and natural English translation
- Organize into clear paragraphs
- Maintain professional tone for economic/financial content
- Preserve important numbers, company names, and technical terms
- Remove any photo captions or irrelevant content
- Format for better readability with proper paragraph breaks

Article: %q

Provide only the clean, well-formatted English translation:`, text)
}

func summaryShortPrompt(title, description string) string {
	return fmt.Sprintf(`Summarize the following Korean news article in exactly 2-3 sentences in Korean. Focus on the key facts and main points. Keep it concise and informative.

Title: %q
Description: %q

Respond with only the summary, no additional text or explanations.`, title, description)
}

func summaryArticlePrompt(text string) string {
	return fmt.Sprintf(`Summarize the following Korean news article in 3-5 clear sentences in Korean. Include the main points, key facts, and any important conclusions. Make it comprehensive yet concise.

Article: %q

Provide only the Korean summary:`, text)
}

func formatPrompt(text string) string {
	return fmt.Sprintf(`Reformat the following Korean economic news article for better readability. Break it into clear, well-structured paragraphs with proper line breaks.

Requirements:
- Keep the original Korean text exactly as is (no translation)
- Add proper paragraph breaks for better readability
- Separate different topics/ideas into distinct paragraphs
- Remove any photo captions or irrelevant content
- Maintain professional tone and all original information
- Organize the flow logically

Korean Article: %q

Provide only the reformatted Korean text with proper paragraph breaks:`, text)
}
