package transform

import "fmt"

// cleaningPrompt asks the model to strip markdown noise and undo merge
// accidents without touching names, numbers, or URLs.
func cleaningPrompt(text string) string {
	return fmt.Sprintf(`Please clean the following text by:

1. Remove all markdown syntax (**, *, ##, ###, [], (), etc.)
2. Fix any merge errors where two completely different news items are accidentally combined
3. Ensure the content flows naturally and makes sense
4. Keep all technical terms, company names, and product names exactly as they are
5. Preserve numbers, dates, and URLs
6. If you detect two different news items merged together, separate them or keep only the more complete/coherent one
7. Remove any redundant or duplicate information
8. Return only the cleaned text, no explanations

Text to clean:
%s`, text)
}

// selectionPrompt asks the model to pick the top N most impactful and
// mutually distinct items from a JSON array.
func selectionPrompt(label, itemsJSON string, limit int) string {
	return fmt.Sprintf(`You are analyzing news items from the %[1]s subcategory. Your task is to select the TOP %[2]d most impactful and COMPLETELY DISTINCT items.

**Selection Criteria (in order of importance):**
1. **Significance**: How important is this news for the AI/GenAI industry?
2. **Innovation**: Does it introduce new technology, methods, or approaches?
3. **Business Impact**: Will this affect businesses, markets, or industry dynamics?
4. **Adoption Potential**: How likely is this to be widely adopted or influential?
5. **Uniqueness**: Must be completely different from other selected items

**Context-Specific Guidelines:**
- HIGHLIGHTS: Most significant overall developments and breakthroughs
- BUSINESS subcategories: Major funding, partnerships, acquisitions, market changes, or strategic moves
- PRODUCTS: Most innovative or widely-adopted product launches and releases
- TECHNOLOGY subcategories: Breakthrough open-source projects, models, or technical advances
- RESEARCH subcategories: Most groundbreaking research papers, methodologies, or scientific discoveries

**Input Data:**
%[3]s

**CRITICAL DEDUPLICATION RULES:**
1. **Reference Link Check**: If two items have the same or very similar reference_link (ignoring URL parameters like utm_source, utm_campaign, utm_medium), they are DUPLICATES - select only ONE
2. **Title Similarity**: If two items have nearly identical titles or refer to the same product/company/research, they are DUPLICATES
3. **Content Overlap**: If two items describe the same event, announcement, or development, they are DUPLICATES
4. **Company/Product Names**: If two items are about the same specific company, product, model, or research paper, they are DUPLICATES

**STRICT SELECTION PROCESS:**
1. **First Pass - Deduplication**: Group items by similarity (same reference domain, same company, same product, same research)
2. **Second Pass - Best Representative**: From each group, select only the most comprehensive/impactful item
3. **Third Pass - Final Selection**: Choose the top %[2]d most impactful items from the deduplicated set
4. **Final Verification**: Double-check that NO two selected items are about the same thing

**EXAMPLES OF DUPLICATES TO AVOID:**
- Multiple items about the same GitHub repository (even with different descriptions)
- Multiple items about the same company announcement (even from different sources)
- Multiple items about the same research paper (even with different interpretations)
- Multiple items with reference_link pointing to the same base URL (ignore query parameters)
- Multiple items about the same product release or update

**UNIQUENESS VERIFICATION CHECKLIST:**
Before finalizing, verify each selected item is about:
- A DIFFERENT company/organization
- A DIFFERENT product/service/model
- A DIFFERENT research paper/study
- A DIFFERENT event/announcement
- A DIFFERENT reference link (base URL, ignoring parameters)

**FINAL INSTRUCTIONS:**
- Select exactly %[2]d items - no more, no less
- Preserve original JSON structure for selected items
- Return only the JSON array with your %[2]d selected items
- No explanations or additional text
- If fewer than %[2]d truly distinct items exist, select the best available ones without duplicating

Return only the JSON array with your %[2]d selected items. No explanations or additional text.`, label, limit, itemsJSON)
}

// translationPrompt asks for a Chinese translation that keeps technical
// terms, names, and numbers in their original form.
func translationPrompt(text string) string {
	return fmt.Sprintf(`请将以下英文文本翻译成中文，但需要遵循以下重要规则：

1. 保持翻译准确和专业
2. 保留所有技术缩写词的原文形式，如：LLM, AI, GenAI, API, GPU, ML, NLP, RAG, OCR, SDK, CLI, GUI, etc.
3. 保留所有公司名称的原文形式，如：OpenAI, Google, Meta, Microsoft, Anthropic, etc.
4. 保留所有产品名称和模型名称的原文形式，如：GPT, Claude, Gemini, ChatGPT, etc.
5. 保留所有编程相关术语的原文形式，如：Python, JavaScript, TypeScript, GitHub, Docker, etc.
6. 保留所有技术框架和工具名称的原文形式，如：PyTorch, TensorFlow, Hugging Face, etc.
7. 保留所有学术机构名称的原文形式，如：Stanford, MIT, etc.
8. 保持数字、百分比、货币金额等的原始格式
9. 翻译要自然流畅，符合中文表达习惯
10. 只返回翻译结果，不要添加任何解释或说明

需要翻译的文本：
%s`, text)
}
