package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"llmdigest/internal/models"
)

// pageView is the root data handed to the HTML template.
type pageView struct {
	Lang       string
	L          Localization
	Date       string
	Year       int
	Nav        []navItem
	Highlights []models.Item
	Business   groupedView
	Products   flatView
	Technology groupedView
	Research   groupedView
}

type navItem struct {
	ID    string
	Label string
}

// flatView renders a section whose items form a single list.
type flatView struct {
	ID     string
	Title  string
	Source string
	Items  []models.Item
}

// groupedView renders a section whose items are split into subcategories.
// Empty subcategories are dropped before rendering; Total still counts every
// item the section holds.
type groupedView struct {
	ID     string
	Title  string
	Source string
	Total  int
	Groups []groupView
}

type groupView struct {
	Title string
	Items []models.Item
}

// HTMLReport renders the digest as a self-contained HTML page in the
// language the digest content is written in.
func HTMLReport(d *models.Digest, now time.Time) (string, error) {
	var buf bytes.Buffer

	if err := reportTemplate.Execute(&buf, buildPage(d, now)); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}

	return buf.String(), nil
}

// WriteHTML renders the digest and writes the page to path.
func WriteHTML(path string, d *models.Digest, now time.Time) error {
	page, err := HTMLReport(d, now)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}

	return nil
}

func buildPage(d *models.Digest, now time.Time) pageView {
	lang := DetectLanguage(d)
	l := Locale(lang)

	return pageView{
		Lang: lang,
		L:    l,
		Date: now.Format("2006-01-02"),
		Year: now.Year(),
		Nav: []navItem{
			{ID: "highlights", Label: l.Highlights},
			{ID: "business", Label: l.Business},
			{ID: "products", Label: l.Products},
			{ID: "technology", Label: l.Technology},
			{ID: "research", Label: l.Research},
		},
		Highlights: d.Highlights,
		Business:   buildGrouped(d, models.SectionBusiness, "business", l.Business, l),
		Products:   flatView{ID: "products", Title: l.Products, Source: l.Source, Items: d.Products},
		Technology: buildGrouped(d, models.SectionTechnology, "technology", l.Technology, l),
		Research:   buildGrouped(d, models.SectionResearch, "research", l.Research, l),
	}
}

func buildGrouped(d *models.Digest, section, id, title string, l Localization) groupedView {
	view := groupedView{ID: id, Title: title, Source: l.Source}

	for _, g := range d.Groups() {
		if g.Section != section {
			continue
		}

		view.Total += len(*g.Items)

		if len(*g.Items) == 0 {
			continue
		}

		view.Groups = append(view.Groups, groupView{
			Title: subcategoryTitle(l, g.Subcategory),
			Items: *g.Items,
		})
	}

	return view
}

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateText))

const reportTemplateText = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.L.Title}}</title>
    <style>
` + reportCSS + `    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.L.Title}}</h1>
            <p>{{.L.GeneratedOn}}: {{.Date}}</p>
        </header>

        <nav><ul>{{range .Nav}}<li><a href="#{{.ID}}">{{.Label}}</a></li>{{end}}</ul></nav>

        <section id="highlights">
            <h2>{{.L.Highlights}}</h2>
            <div class="section-stats">Total items: <strong>{{len .Highlights}}</strong></div>
            {{- range .Highlights}}
            <div class="highlight-item"><p>{{.Description}}</p></div>
            {{- end}}
        </section>

{{template "grouped" .Business}}

{{template "flat" .Products}}

{{template "grouped" .Technology}}

{{template "grouped" .Research}}

        <footer>
            <p>&copy; {{.Year}} {{.L.Copyright}}</p>
        </footer>
    </div>

    <!-- Scroll to top button (mobile only) -->
    <button class="scroll-to-top" id="scrollToTop" onclick="scrollToTop()" aria-label="Scroll to top">
        &#8679;
    </button>

    <script>
        // Show/hide scroll to top button
        window.addEventListener('scroll', function() {
            const scrollToTopBtn = document.getElementById('scrollToTop');
            const scrollPosition = window.pageYOffset || document.documentElement.scrollTop;

            // Only show on mobile devices and when scrolled down
            if (window.innerWidth <= 768 && scrollPosition > 300) {
                scrollToTopBtn.classList.add('show');
            } else {
                scrollToTopBtn.classList.remove('show');
            }
        });

        // Smooth scroll to top function
        function scrollToTop() {
            window.scrollTo({
                top: 0,
                behavior: 'smooth'
            });
        }

        // Handle window resize
        window.addEventListener('resize', function() {
            const scrollToTopBtn = document.getElementById('scrollToTop');
            if (window.innerWidth > 768) {
                scrollToTopBtn.classList.remove('show');
            }
        });
    </script>
</body>
</html>
{{define "flat"}}        <section id="{{.ID}}">
            <h2>{{.Title}}</h2>
            <div class="section-stats">Total items: <strong>{{len .Items}}</strong></div>
            {{- range .Items}}
            <div class="item">
                {{- with .Title}}
                <h4>{{.}}</h4>
                {{- end}}
                {{- with .Description}}
                <p>{{.}}</p>
                {{- end}}
                {{- with .ReferenceLink}}
                <p><a href="{{.}}" target="_blank">[{{$.Source}}]</a></p>
                {{- end}}
            </div>
            {{- end}}
        </section>{{end}}
{{define "grouped"}}        <section id="{{.ID}}">
            <h2>{{.Title}}</h2>
            <div class="section-stats">Total items: <strong>{{.Total}}</strong></div>
            {{- range .Groups}}
            <h3>{{.Title}}</h3>
            <div class="section-stats">{{len .Items}} items</div>
            {{- range .Items}}
            <div class="item">
                {{- with .Title}}
                <h4>{{.}}</h4>
                {{- end}}
                {{- with .Description}}
                <p>{{.}}</p>
                {{- end}}
                {{- with .ReferenceLink}}
                <p><a href="{{.}}" target="_blank">[{{$.Source}}]</a></p>
                {{- end}}
            </div>
            {{- end}}
            {{- end}}
        </section>{{end}}`

const reportCSS = `        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            margin: 0;
            padding: 0;
            background-color: #f4f4f9;
            color: #333;
        }
        .container {
            max-width: 1000px;
            margin: auto;
            padding: 20px;
        }
        header {
            background: #fff;
            padding: 2rem;
            border-bottom: 1px solid #ddd;
            text-align: center;
            border-radius: 8px;
            margin-bottom: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        header h1 {
            margin: 0;
            font-size: 2.5rem;
            color: #2c3e50;
        }
        header p {
            margin: 10px 0 0;
            color: #7f8c8d;
            font-size: 1.1rem;
        }
        nav {
            background: #34495e;
            color: #fff;
            padding: 1rem;
            position: sticky;
            top: 0;
            z-index: 1000;
            border-radius: 8px;
            margin-bottom: 20px;
        }
        nav ul {
            list-style: none;
            padding: 0;
            margin: 0;
            display: flex;
            justify-content: center;
            flex-wrap: wrap;
        }
        nav ul li {
            margin: 0 15px 10px 15px;
        }
        nav a {
            color: #fff;
            text-decoration: none;
            font-weight: bold;
            padding: 8px 15px;
            border-radius: 5px;
            transition: background-color 0.3s;
            display: block;
        }
        nav a:hover {
            background-color: #4e6a85;
        }
        section {
            background: #fff;
            margin: 20px 0;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h2 {
            color: #2980b9;
            border-bottom: 2px solid #2980b9;
            padding-bottom: 10px;
            margin-top: 0;
        }
        h3 {
            color: #34495e;
            margin-top: 30px;
            margin-bottom: 15px;
        }
        .item {
            margin-bottom: 25px;
            padding-bottom: 20px;
            border-bottom: 1px solid #ecf0f1;
        }
        .item:last-child {
            border-bottom: none;
        }
        .item h4 {
            margin: 0 0 10px 0;
            color: #2c3e50;
            font-size: 1.1rem;
        }
        .item p {
            margin: 8px 0;
            text-align: justify;
        }
        .item a {
            color: #2980b9;
            text-decoration: none;
            font-weight: 600;
        }
        .item a:hover {
            text-decoration: underline;
        }
        .highlight-item {
            background: #f8f9fa;
            padding: 15px;
            border-left: 4px solid #2980b9;
            margin-bottom: 15px;
        }
        .highlight-item p {
            margin: 0;
        }
        .stats {
            background: #ecf0f1;
            padding: 15px;
            border-radius: 5px;
            margin-bottom: 20px;
            text-align: center;
        }
        .stats strong {
            color: #2c3e50;
            font-size: 1.1rem;
        }
        footer {
            text-align: center;
            padding: 30px;
            margin-top: 40px;
            background-color: #34495e;
            color: #fff;
            border-radius: 8px;
        }
        .section-stats {
            color: #7f8c8d;
            font-size: 0.9rem;
            margin-bottom: 20px;
        }

        /* Mobile optimizations */
        @media (max-width: 768px) {
            .container {
                padding: 10px;
                margin: 0;
            }

            header {
                padding: 1.5rem 1rem;
                margin-bottom: 15px;
                border-radius: 4px;
            }

            header h1 {
                font-size: 1.8rem;
                line-height: 1.3;
            }

            header p {
                font-size: 1rem;
            }

            nav {
                padding: 0.5rem;
                margin-bottom: 15px;
                border-radius: 4px;
                position: static;
            }

            nav ul {
                flex-direction: column;
                align-items: stretch;
                gap: 0;
            }

            nav ul li {
                margin: 0;
                border-bottom: 1px solid #4e6a85;
            }

            nav ul li:last-child {
                border-bottom: none;
            }

            nav a {
                padding: 12px 15px;
                border-radius: 0;
                text-align: center;
                font-size: 1rem;
                min-height: 44px;
                display: flex;
                align-items: center;
                justify-content: center;
            }

            nav a:active {
                background-color: #3a5571;
            }

            section {
                margin: 15px 0;
                padding: 20px 15px;
                border-radius: 4px;
            }

            h2 {
                font-size: 1.5rem;
                margin-bottom: 15px;
            }

            h3 {
                font-size: 1.2rem;
                margin-top: 20px;
                margin-bottom: 10px;
            }

            .item {
                margin-bottom: 20px;
                padding-bottom: 15px;
            }

            .item h4 {
                font-size: 1.1rem;
                line-height: 1.4;
                margin-bottom: 8px;
            }

            .item p {
                font-size: 0.95rem;
                line-height: 1.5;
                text-align: left;
                margin: 6px 0;
            }

            .highlight-item {
                padding: 12px;
                margin-bottom: 12px;
                border-left-width: 3px;
            }

            .highlight-item p {
                font-size: 0.95rem;
                line-height: 1.5;
            }

            .section-stats {
                font-size: 0.85rem;
                margin-bottom: 15px;
            }

            footer {
                padding: 20px 15px;
                margin-top: 30px;
                border-radius: 4px;
            }

            footer p {
                font-size: 0.9rem;
            }
        }

        /* Extra small screens */
        @media (max-width: 480px) {
            .container {
                padding: 5px;
            }

            header {
                padding: 1rem 0.75rem;
            }

            header h1 {
                font-size: 1.6rem;
            }

            section {
                padding: 15px 10px;
            }

            .item p, .highlight-item p {
                font-size: 0.9rem;
            }

            nav a {
                padding: 10px 12px;
                font-size: 0.95rem;
            }
        }

        /* Touch device optimizations */
        @media (hover: none) and (pointer: coarse) {
            nav a {
                min-height: 48px;
            }

            .item a {
                padding: 4px 8px;
                margin: -4px -8px;
                border-radius: 4px;
                transition: background-color 0.2s;
            }

            .item a:active {
                background-color: rgba(41, 128, 185, 0.1);
            }
        }

        /* Scroll to top button */
        .scroll-to-top {
            display: none;
            position: fixed;
            bottom: 20px;
            right: 20px;
            width: 50px;
            height: 50px;
            background-color: #2980b9;
            color: white;
            border: none;
            border-radius: 50%;
            cursor: pointer;
            box-shadow: 0 4px 12px rgba(0,0,0,0.15);
            transition: all 0.3s ease;
            z-index: 1001;
            font-size: 20px;
        }

        .scroll-to-top:hover {
            background-color: #21618c;
            transform: translateY(-2px);
            box-shadow: 0 6px 16px rgba(0,0,0,0.2);
        }

        .scroll-to-top:active {
            transform: translateY(0);
        }

        .scroll-to-top.show {
            display: block;
            animation: fadeIn 0.3s ease;
        }

        @keyframes fadeIn {
            from {
                opacity: 0;
                transform: translateY(10px);
            }
            to {
                opacity: 1;
                transform: translateY(0);
            }
        }

        /* Show scroll button only on mobile */
        @media (max-width: 768px) {
            .scroll-to-top {
                display: none;
                width: 48px;
                height: 48px;
                bottom: 15px;
                right: 15px;
                font-size: 18px;
            }
        }

        @media (max-width: 480px) {
            .scroll-to-top {
                width: 44px;
                height: 44px;
                bottom: 12px;
                right: 12px;
                font-size: 16px;
            }
        }
`
