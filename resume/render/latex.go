package render

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"tailor-backend/resume/model"
)

//go:embed template.tex
var defaultTemplate string

// Resume renders a resume into a complete LaTeX document using the
// embedded template.
func Resume(r model.Resume) string {
	return ResumeWithTemplate(r, defaultTemplate)
}

// ResumeWithTemplate substitutes rendered section blocks into templateTex.
// Blocks are referenced as {{HEADER_BLOCK}}, {{EDUCATION_BLOCK}}, and so on.
func ResumeWithTemplate(r model.Resume, templateTex string) string {
	replacer := strings.NewReplacer(
		"{{HEADER_BLOCK}}", strings.TrimSpace(renderHeader(r)),
		"{{EDUCATION_BLOCK}}", strings.TrimSpace(renderEducation(r)),
		"{{EXPERIENCE_BLOCK}}", strings.TrimSpace(renderExperience(r)),
		"{{PROJECTS_BLOCK}}", strings.TrimSpace(renderProjects(r)),
		"{{SKILLS_BLOCK}}", strings.TrimSpace(renderSkills(r)),
		"{{LEADERSHIP_BLOCK}}", strings.TrimSpace(renderLeadership(r)),
		"{{AWARDS_BLOCK}}", strings.TrimSpace(renderAwards(r)),
	)
	return replacer.Replace(templateTex)
}

var latexReplacer = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escape(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

func normalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func joinNonEmpty(parts []string, sep string) string {
	var cleaned []string
	for _, part := range parts {
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, sep)
}

func itemize(items []string) string {
	var cleaned []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			cleaned = append(cleaned, escape(item))
		}
	}
	if len(cleaned) == 0 {
		return ""
	}
	lines := []string{"\\begin{itemize}"}
	for _, item := range cleaned {
		lines = append(lines, "    \\item "+item)
	}
	lines = append(lines, "\\end{itemize}")
	return strings.Join(lines, "\n")
}

// gpaShouldShow hides numeric GPAs below 3.5; non-numeric values pass through.
func gpaShouldShow(gpa string) bool {
	if gpa == "" {
		return false
	}
	parsed, err := strconv.ParseFloat(gpa, 64)
	if err != nil {
		return true
	}
	return parsed >= 3.5
}

func section(title, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return fmt.Sprintf("\\section*{%s}\n%s\n", escape(title), body)
}

func href(link, label string) string {
	return fmt.Sprintf("\\href{%s}{%s}", link, escape(label))
}

func renderHeader(r model.Resume) string {
	h := r.Header
	var contact []string
	if h.Phone != "" {
		contact = append(contact, escape(h.Phone))
	}
	if h.Email != "" {
		contact = append(contact, href("mailto:"+h.Email, h.Email))
	}
	if h.LinkedIn != "" {
		contact = append(contact, href(normalizeURL(h.LinkedIn), h.LinkedIn))
	}
	if h.GitHub != "" {
		contact = append(contact, href(normalizeURL(h.GitHub), h.GitHub))
	}
	if h.Portfolio != "" {
		contact = append(contact, href(normalizeURL(h.Portfolio), h.Portfolio))
	}
	if h.Location != "" {
		contact = append(contact, escape(h.Location))
	}

	lines := []string{"\\begin{center}"}
	if h.Name != "" {
		lines = append(lines, fmt.Sprintf("    {\\LARGE \\textbf{%s}} \\\\", escape(h.Name)))
	}
	if contactLine := joinNonEmpty(contact, " \\quad "); contactLine != "" {
		lines = append(lines, "    "+contactLine)
	}
	lines = append(lines, "\\end{center}")
	return strings.Join(lines, "\n")
}

func renderEducation(r model.Resume) string {
	var entries []string
	for _, edu := range r.Education {
		var lines []string
		header := joinNonEmpty([]string{
			boldIf(edu.School),
			hfillIf(escape(edu.Grad)),
		}, " ")
		if header != "" {
			lines = append(lines, header+" \\\\")
		}
		if degree := joinNonEmpty([]string{escape(edu.Degree), escape(edu.Major)}, " "); degree != "" {
			lines = append(lines, degree+" \\\\")
		}
		if coursework := joinEscaped(edu.Coursework); coursework != "" {
			lines = append(lines, "\\textbf{Coursework:} "+coursework)
		}
		if gpaShouldShow(edu.GPA) {
			lines = append(lines, "GPA: "+escape(edu.GPA))
		}
		if len(lines) > 0 {
			entries = append(entries, strings.Join(lines, "\n"))
		}
	}
	return section("Education", strings.Join(entries, "\n\n"))
}

func renderExperience(r model.Resume) string {
	var entries []string
	for _, role := range r.Experience {
		var left []string
		if role.Company != "" {
			left = append(left, "\\textbf{"+escape(role.Company)+"}")
		}
		if role.Location != "" {
			left = append(left, "\\textit{"+escape(role.Location)+"}")
		}
		dateRange := joinNonEmpty([]string{escape(role.Start), escape(role.End)}, " -- ")
		header := joinNonEmpty([]string{
			strings.Join(left, " "),
			hfillIf(dateRange),
		}, " ")

		var parts []string
		if header != "" {
			parts = append(parts, header+" \\\\")
		}
		if role.Role != "" {
			parts = append(parts, escape(role.Role))
		}
		if bullets := itemize(role.Bullets); bullets != "" {
			parts = append(parts, bullets)
		}
		if len(parts) > 0 {
			entries = append(entries, strings.Join(parts, "\n"))
		}
	}
	return section("Work Experience", strings.Join(entries, "\n\n"))
}

func renderProjects(r model.Resume) string {
	var entries []string
	for _, project := range r.Projects {
		header := boldIf(project.Name)
		if project.Link != "" {
			header = joinNonEmpty([]string{header, href(normalizeURL(project.Link), project.Link)}, " \\textemdash ")
		}
		dateRange := joinNonEmpty([]string{escape(project.Start), escape(project.End)}, " -- ")
		if dateRange != "" {
			header = joinNonEmpty([]string{header, "\\hfill " + dateRange}, " ")
		}

		var parts []string
		if header != "" {
			parts = append(parts, header+" \\\\")
		}
		if stack := joinEscaped(project.Stack); stack != "" {
			parts = append(parts, "\\textit{Stack:} "+stack)
		}
		if bullets := itemize(project.Bullets); bullets != "" {
			parts = append(parts, bullets)
		}
		if len(parts) > 0 {
			entries = append(entries, strings.Join(parts, "\n"))
		}
	}
	return section("Projects", strings.Join(entries, "\n\n"))
}

func renderSkills(r model.Resume) string {
	skills := r.Skills
	var lines []string
	if len(skills.Languages) > 0 {
		lines = append(lines, "\\textbf{Programming Languages:} "+joinEscaped(skills.Languages))
	}
	if len(skills.Frameworks) > 0 {
		lines = append(lines, "\\textbf{Frameworks:} "+joinEscaped(skills.Frameworks))
	}
	if len(skills.Tools) > 0 {
		lines = append(lines, "\\textbf{Tools:} "+joinEscaped(skills.Tools))
	}
	if len(skills.Concepts) > 0 {
		lines = append(lines, "\\textbf{Concepts:} "+joinEscaped(skills.Concepts))
	}
	return section("Skills", strings.Join(lines, "\\\\\n"))
}

func renderLeadership(r model.Resume) string {
	var entries []string
	for _, leader := range r.Leadership {
		dateRange := joinNonEmpty([]string{escape(leader.Start), escape(leader.End)}, " -- ")
		header := joinNonEmpty([]string{
			boldIf(leader.Org),
			hfillIf(dateRange),
		}, " ")

		var parts []string
		if header != "" {
			parts = append(parts, header+" \\\\")
		}
		if leader.Title != "" {
			parts = append(parts, escape(leader.Title))
		}
		if bullets := itemize(leader.Bullets); bullets != "" {
			parts = append(parts, bullets)
		}
		if len(parts) > 0 {
			entries = append(entries, strings.Join(parts, "\n"))
		}
	}
	return section("Leadership Experience", strings.Join(entries, "\n\n"))
}

func renderAwards(r model.Resume) string {
	var awards []string
	for _, award := range r.Awards {
		if strings.TrimSpace(award) != "" {
			awards = append(awards, award)
		}
	}
	return section("Awards", itemize(awards))
}

func boldIf(text string) string {
	if text == "" {
		return ""
	}
	return "\\textbf{" + escape(text) + "}"
}

// hfillIf expects already-escaped text.
func hfillIf(text string) string {
	if text == "" {
		return ""
	}
	return "\\hfill " + text
}

func joinEscaped(items []string) string {
	var cleaned []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			cleaned = append(cleaned, escape(item))
		}
	}
	return strings.Join(cleaned, ", ")
}
