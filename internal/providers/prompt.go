package providers

// BuildPrompt returns the fixed instructional prompt sent to generation
// services, with the markdown document embedded verbatim. Both generator
// clients share it so switching providers never changes the instructions.
func BuildPrompt(markdownDoc string) string {
	return `You are an expert web designer. Convert the following markdown content into a beautiful, professional, responsive HTML page.

Requirements:
1. Create a complete, self-contained HTML5 document
2. Include modern CSS with flexbox/grid layouts
3. Use semantic HTML tags (article, section, header, footer, nav)
4. Make it mobile-responsive with media queries
5. Use a professional color scheme (blues, grays, whites)
6. Include proper typography and spacing
7. Preserve ALL content from the markdown
8. Add subtle design elements (gradients, shadows, borders)
9. Ensure accessibility (WCAG standards)
10. Return ONLY the complete HTML code, no explanations

Markdown to convert:
---
` + markdownDoc + `
---

Generate the complete, production-ready HTML page now:`
}
