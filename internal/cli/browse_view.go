package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"job-finder/internal/apply"
	"job-finder/internal/catalog"
)

func (m browseModel) View() string {
	if m.width <= 0 {
		m.width = 100
	}
	if m.height <= 0 {
		m.height = 30
	}

	switch m.mode {
	case browseModeWelcome:
		return m.viewWelcome()
	case browseModeDetail:
		return m.viewDetail()
	case browseModeApply:
		return m.viewApply()
	case browseModeSort:
		return m.viewSortPicker()
	default:
		return m.viewList()
	}
}

func (m browseModel) viewWelcome() string {
	s := m.styles
	lines := []string{
		s.Title.Render("Job Finder"),
		"",
		"Find your dream job from postings around the world.",
		"Search, sort, save the ones you like and apply in a few keystrokes.",
		"",
		s.Button.Render("Let's Get Started"),
		"",
		s.Muted.Render("press any key to continue | t: dark mode | ctrl+c: quit"),
	}
	panel := s.Panel.Width(clampInt(m.width-8, 40, 72)).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func (m browseModel) viewList() string {
	s := m.styles
	header := m.renderTabs()

	searchLine := m.search.View()
	if !m.searching && m.search.Value() == "" {
		searchLine = s.Muted.Render("press / to search by job title or company")
	}

	lines := []string{header, searchLine}
	if m.tab == browseTabJobs {
		lines = append(lines, m.renderCategories(m.width))
	}
	lines = append(lines, s.Muted.Render(kv("Sort By", m.lists[m.tab].sortKey.Label())))
	lines = append(lines, m.renderJobList(m.width))
	lines = append(lines, m.renderStatusLine(m.width))
	lines = append(lines, m.help.View(listKeys{m.keys}))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m browseModel) renderTabs() string {
	s := m.styles
	jobsLabel := fmt.Sprintf(" Jobs (%d) ", m.catalog.Len())
	savedLabel := fmt.Sprintf(" Saved (%d) ", m.saved.Len())
	if m.tab == browseTabJobs {
		jobsLabel = s.Selected.Render(jobsLabel)
		savedLabel = s.Muted.Render(savedLabel)
	} else {
		jobsLabel = s.Muted.Render(jobsLabel)
		savedLabel = s.Selected.Render(savedLabel)
	}
	title := s.Header.Render("Job Finder")
	out := title + "  " + jobsLabel + " " + savedLabel
	if m.loading {
		out += "  " + m.spinner.View() + s.Muted.Render(" loading")
	}
	return out
}

func (m browseModel) renderCategories(width int) string {
	s := m.styles
	active := strings.ToLower(m.lists[browseTabJobs].search)
	parts := make([]string, 0, len(popularCategories))
	used := 0
	for i, c := range popularCategories {
		label := strconv.Itoa(i+1) + " " + c
		w := lipgloss.Width(label) + 3
		if used+w > width && used > 0 {
			break
		}
		used += w
		if strings.ToLower(c) == active {
			parts = append(parts, s.Selected.Render(" "+label+" "))
			continue
		}
		parts = append(parts, s.Badge.Render(label))
	}
	return strings.Join(parts, " ")
}

func (m browseModel) renderJobList(width int) string {
	s := m.styles
	panelW := maxInt(width-2, 20)
	innerW := maxInt(panelW-4, 16)
	st := m.lists[m.tab]

	if len(m.visible) == 0 {
		return s.Panel.Width(panelW).Render(m.emptyListMessage())
	}

	maxRows := clampInt(m.height-14, 3, 40)
	start, end := listWindow(len(m.visible), st.cursor, maxRows)

	titleW := maxInt(innerW*4/10, 8)
	companyW := maxInt(innerW*3/10, 6)
	salaryW := maxInt(innerW-titleW-companyW-6, 4)

	lines := make([]string, 0, maxRows+2)
	if start > 0 {
		lines = append(lines, s.Muted.Render("..."))
	}
	for i := start; i < end; i++ {
		j := m.visible[i]
		line := fmt.Sprintf("%s %s  %s  %s",
			savedMark(m.saved.IsSaved(j.ID)),
			padRight(j.Title, titleW),
			padRight(j.CompanyName, companyW),
			truncateRunes(formatSalaryRange(j), salaryW),
		)
		if i == st.cursor {
			line = s.Selected.Width(innerW).Render(truncateRunes(line, innerW))
		}
		lines = append(lines, line)
	}
	if end < len(m.visible) {
		lines = append(lines, s.Muted.Render("..."))
	}
	return s.Panel.Width(panelW).Render(strings.Join(lines, "\n"))
}

func (m browseModel) emptyListMessage() string {
	s := m.styles
	search := m.lists[m.tab].search
	if m.tab == browseTabSaved {
		if m.saved.Len() == 0 {
			return s.Muted.Render("No saved jobs yet. Press s on a job to save it.")
		}
		return s.Muted.Render(fmt.Sprintf("No saved jobs match %q", search))
	}
	if m.catalog.Len() == 0 {
		if m.loading {
			return m.spinner.View() + " Loading jobs..."
		}
		if m.loadErr != nil {
			return s.Error.Render("Could not load jobs.") + s.Muted.Render(" Press r to retry.")
		}
		return s.Muted.Render("No jobs available")
	}
	return s.Muted.Render(fmt.Sprintf("No jobs match %q", search))
}

func (m browseModel) renderStatusLine(width int) string {
	msg := strings.TrimSpace(m.statusMessage)
	if msg == "" {
		return m.styles.Muted.Render(" ")
	}
	msg = truncateRunes(msg, maxInt(width-4, 10))
	switch m.statusKind {
	case statusError:
		return m.styles.Error.Render(msg)
	case statusOK:
		return m.styles.Toast.Render(msg)
	default:
		return m.styles.Muted.Render(msg)
	}
}

func (m browseModel) viewDetail() string {
	s := m.styles
	title := s.Header.Render("Job Details")
	if m.saved.IsSaved(m.detail.ID) {
		title += "  " + s.Badge.Render("★ saved")
	}
	body := s.Panel.Width(maxInt(m.width-2, 20)).Render(m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		m.renderStatusLine(m.width),
		m.help.View(detailKeys{m.keys}),
	)
}

func (m browseModel) renderDetailBody(width int) string {
	s := m.styles
	j := m.detail
	wrap := lipgloss.NewStyle().Width(maxInt(width, 10))

	link := s.Muted.Render("(no application link)")
	if strings.TrimSpace(j.ApplicationLink) != "" {
		link = s.Link.Render(j.ApplicationLink)
	}
	lines := []string{
		s.Title.Render(j.Title),
		s.Label.Render(j.CompanyName),
		s.Muted.Render(kv("Logo", defaultIfEmpty(j.CompanyLogo, "none"))),
		"",
		s.Label.Render("Job Type: ") + j.JobType,
		s.Label.Render("Work Model: ") + j.WorkModel,
		s.Label.Render("Seniority Level: ") + j.SeniorityLevel,
		s.Label.Render("Salary Range: ") + formatSalaryRange(j),
		s.Label.Render("Saved: ") + yesNo(m.saved.IsSaved(j.ID)),
		s.Label.Render("Apply: ") + link,
		"",
		s.Label.Render("Description"),
	}
	desc := descriptionText(j.Description)
	if desc == "" || desc == catalog.DefaultDescription {
		desc = "No description available at this moment.\nThank you for understanding!"
	}
	lines = append(lines, wrap.Render(desc), "", s.Button.Render("Apply Now"))
	return strings.Join(lines, "\n")
}

func (m browseModel) viewApply() string {
	if m.form == nil {
		return ""
	}
	s := m.styles
	f := m.form
	header := s.Header.Render("Application Form")
	hints := s.Muted.Render("tab/shift+tab or up/down: move | enter: next/submit | ctrl+s: submit | esc: cancel")

	lines := []string{
		s.Title.Render(f.Job.Title),
		s.Label.Render(f.Job.CompanyName),
		"",
	}
	for i, field := range f.Fields {
		label := s.Label.Render(field.Label) + s.Error.Render(" *")
		lines = append(lines, label)
		if i == f.Index {
			lines = append(lines, f.Input.View())
		} else {
			value := field.Value
			if strings.TrimSpace(value) == "" {
				value = s.Muted.Render(field.Placeholder)
			}
			lines = append(lines, "  "+truncateRunes(value, maxInt(m.width-10, 10)))
		}
		if msg := f.fieldError(field.Key); msg != "" {
			lines = append(lines, s.Error.Render(msg))
		}
		lines = append(lines, "")
	}
	lines = append(lines, s.Button.Render("Submit Application"))
	if n := len(f.FieldErrors); n > 0 {
		lines = append(lines, "", s.Error.Render(fmt.Sprintf("%d of %d fields need attention", n, len(apply.Fields))))
	}

	panel := s.Panel.Width(maxInt(m.width-2, 40)).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, header, hints, panel, m.renderStatusLine(m.width))
}

func (m browseModel) viewSortPicker() string {
	s := m.styles
	current := m.lists[m.tab].sortKey
	lines := []string{s.Title.Render("Sort By"), ""}
	for i, k := range m.sortOptions() {
		mark := "  "
		if k == current {
			mark = "✓ "
		}
		row := mark + k.Label()
		if i == m.sortCursor {
			row = s.Selected.Render(" " + row + " ")
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", s.Muted.Render("up/down: move | enter: apply | esc: cancel"))
	boxW := clampInt(m.width-8, 30, 48)
	panel := s.Panel.Width(boxW).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
