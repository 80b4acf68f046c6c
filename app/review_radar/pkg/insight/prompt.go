package insight

const singlePrompt = `Analyze these customer reviews about "%s" and provide a comprehensive business intelligence report:

%s

Provide a detailed analysis in the following JSON format:
{
    "executive_summary": "2-3 sentence high-level overview of customer sentiment and key findings",
    "key_themes": [
        {"theme": "Theme name", "sentiment": "positive/negative/mixed", "frequency": "high/medium/low", "description": "Brief explanation"}
    ],
    "strengths": [
        {"strength": "What customers love", "impact": "high/medium/low", "examples": "Quote or paraphrase"}
    ],
    "pain_points": [
        {"issue": "Problem area", "severity": "high/medium/low", "recommendation": "Actionable solution"}
    ],
    "recommendations": [
        {"priority": "high/medium/low", "action": "Specific recommendation", "expected_impact": "What it will achieve"}
    ],
    "sentiment_drivers": {
        "positive_drivers": ["Factor 1", "Factor 2", "Factor 3"],
        "negative_drivers": ["Factor 1", "Factor 2", "Factor 3"]
    }
}

Give 4-6 key themes, 3-4 strengths, 3-4 pain points and 4-5 recommendations.
Be specific, data-driven, and actionable. Use customer language where relevant. Return ONLY the JSON object, no additional text.`

const competitivePrompt = `Compare two products based on their customer reviews.

Product A: %s (%s)
%s

Product B: %s (%s)
%s

For each of these attributes: %s
decide which product customers prefer and explain why in 2-3 sentences.
The first sentence must state the winner's advantage, the second sentence the loser's main concern.

Respond in the following JSON format:
{
    "head_to_head_comparison": {
        "quality": {"winner": "product name", "reasoning": "..."}
    },
    "subject_a_strengths": ["short statement"],
    "subject_a_weaknesses": ["short statement"],
    "subject_b_strengths": ["short statement"],
    "subject_b_weaknesses": ["short statement"],
    "executive_summary": "2-3 sentence overview of the comparison"
}

Use exactly "%s" or "%s" as winner values. Omit an attribute if the reviews say nothing about it.
Return ONLY the JSON object, no additional text.`

const chatPrompt = `You are an AI assistant analyzing customer reviews.

Here are the reviews to analyze:

%s

Answer questions based on these reviews. Be specific, cite examples when relevant, and provide actionable insights.`

const reportSystemPrompt = "You are a professional business report writer specializing in customer experience analysis."

const reportPrompt = `Create a professional executive report based on these insights for %s:

%s

Format as a clean, professional business report with:
- Executive Summary
- Key Findings (bullet points)
- Detailed Analysis (sections with headers)
- Actionable Recommendations (prioritized list)
- Conclusion

Use markdown formatting for structure. Make it suitable for presentation to executives.`
