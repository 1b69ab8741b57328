package render

import "strings"

// Theme holds the cosmetic knobs of the generated page. The application
// variants only ever differed in these values, so they are configuration
// rather than separate templates.
type Theme struct {
	Accent          string `mapstructure:"accent" yaml:"accent" json:"accent"`
	AccentSecondary string `mapstructure:"accent_secondary" yaml:"accent_secondary" json:"accent_secondary"`
	Tagline         string `mapstructure:"tagline" yaml:"tagline" json:"tagline"`
	FooterText      string `mapstructure:"footer_text" yaml:"footer_text" json:"footer_text"`
	FooterNote      string `mapstructure:"footer_note" yaml:"footer_note" json:"footer_note"`
}

// DefaultTheme returns the stock DocWeb look.
func DefaultTheme() Theme {
	return Theme{
		Accent:          "#667eea",
		AccentSecondary: "#764ba2",
		Tagline:         "Generated using PaddleOCR-VL & ERNIE",
		FooterText:      "✨ Created with PaddleOCR-VL (Baidu) & ERNIE",
		FooterNote:      "Powered by advanced AI from Baidu's PaddlePaddle ecosystem",
	}
}

// withDefaults fills empty theme fields from the stock theme.
func (t Theme) withDefaults() Theme {
	def := DefaultTheme()
	if t.Accent == "" {
		t.Accent = def.Accent
	}
	if t.AccentSecondary == "" {
		t.AccentSecondary = def.AccentSecondary
	}
	if t.Tagline == "" {
		t.Tagline = def.Tagline
	}
	if t.FooterText == "" {
		t.FooterText = def.FooterText
	}
	if t.FooterNote == "" {
		t.FooterNote = def.FooterNote
	}
	return t
}

// Wrap embeds an HTML fragment into the complete styled document using the
// default theme. Title and fragment are interpolated without escaping.
func Wrap(fragment, title string) string {
	return Document(fragment, title, DefaultTheme())
}

// Document embeds an HTML fragment into a complete, responsive HTML5 page:
// embedded stylesheet, header with the title, article with the fragment
// verbatim, fixed footer. Pure string substitution, no conditionals.
func Document(fragment, title string, theme Theme) string {
	theme = theme.withDefaults()
	r := strings.NewReplacer(
		"{{TITLE}}", title,
		"{{FRAGMENT}}", fragment,
		"{{ACCENT}}", theme.Accent,
		"{{ACCENT2}}", theme.AccentSecondary,
		"{{TAGLINE}}", theme.Tagline,
		"{{FOOTER_TEXT}}", theme.FooterText,
		"{{FOOTER_NOTE}}", theme.FooterNote,
	)
	return r.Replace(pageTemplate)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{TITLE}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #1a1a1a;
            background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%);
            min-height: 100vh;
            padding: 20px;
        }

        main {
            max-width: 900px;
            margin: 0 auto;
            background: white;
            border-radius: 12px;
            box-shadow: 0 10px 40px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }

        header {
            background: linear-gradient(135deg, {{ACCENT}} 0%, {{ACCENT2}} 100%);
            color: white;
            padding: 60px 40px;
            text-align: center;
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        header p {
            opacity: 0.95;
            font-size: 1.1em;
        }

        article {
            padding: 60px 40px;
        }

        h1 {
            color: {{ACCENT}};
            font-size: 2em;
            margin: 1.5em 0 0.5em 0;
            padding-bottom: 15px;
            border-bottom: 3px solid {{ACCENT}};
        }

        h1:first-child {
            margin-top: 0;
        }

        h2 {
            color: {{ACCENT2}};
            font-size: 1.5em;
            margin: 1.3em 0 0.5em 0;
        }

        h3 {
            color: {{ACCENT}};
            font-size: 1.2em;
            margin: 1em 0 0.5em 0;
        }

        p {
            margin: 1em 0;
            text-align: justify;
        }

        ul, ol {
            margin: 1em 0 1em 2em;
        }

        li {
            margin: 0.5em 0;
        }

        ul li {
            list-style: none;
            position: relative;
            padding-left: 20px;
        }

        ul li:before {
            content: "▸";
            color: {{ACCENT}};
            position: absolute;
            left: 0;
            font-weight: bold;
        }

        footer {
            background: #f8f9fa;
            padding: 40px;
            text-align: center;
            border-top: 1px solid #e0e0e0;
            color: #666;
        }

        @media (max-width: 768px) {
            main { border-radius: 0; }
            header { padding: 40px 20px; }
            header h1 { font-size: 1.8em; }
            article { padding: 30px 20px; }
            h1 { font-size: 1.3em; }
        }
    </style>
</head>
<body>
    <main>
        <header>
            <h1>📄 {{TITLE}}</h1>
            <p>{{TAGLINE}}</p>
        </header>
        <article>
            {{FRAGMENT}}
        </article>
        <footer>
            <p>{{FOOTER_TEXT}}</p>
            <p style="margin-top: 0.5em; font-size: 0.9em;">{{FOOTER_NOTE}}</p>
        </footer>
    </main>
</body>
</html>`
