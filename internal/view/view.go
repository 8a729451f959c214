// Package view holds the server-rendered schedule page and the fragments
// patched into it over server-sent events.
package view

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/msomdec/fitcoach/internal/domain"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// ClassTableID is the element the class table fragment replaces.
const ClassTableID = "class-table"

// ClassRow is one line of the schedule table.
type ClassRow struct {
	Class     domain.FitnessClass
	CoachName string
}

// ClassRows joins classes with their coaches' names, ordered by start time
// then id.
func ClassRows(classes []domain.FitnessClass, coaches []domain.Coach) []ClassRow {
	names := make(map[int64]string, len(coaches))
	for _, c := range coaches {
		names[c.ID] = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}
	rows := make([]ClassRow, len(classes))
	for i, c := range classes {
		rows[i] = ClassRow{Class: c, CoachName: names[c.CoachID]}
	}
	slices.SortFunc(rows, func(a, b ClassRow) int {
		return cmp.Or(cmp.Compare(a.Class.StartTime, b.Class.StartTime), cmp.Compare(a.Class.ID, b.Class.ID))
	})
	return rows
}

// FilterRows keeps the rows whose class type matches classType,
// case-insensitively. An empty classType keeps everything.
func FilterRows(rows []ClassRow, classType string) []ClassRow {
	if classType == "" {
		return rows
	}
	var out []ClassRow
	for _, r := range rows {
		if strings.EqualFold(r.Class.ClassType, classType) {
			out = append(out, r)
		}
	}
	return out
}

var classTypes = []string{
	domain.ClassTypeHIIT,
	domain.ClassTypeCardio,
	domain.ClassTypeAbs,
	domain.ClassTypeMuscle,
	domain.ClassTypeYoga,
	domain.ClassTypePilates,
}

// SchedulePage renders the full schedule page.
func SchedulePage(username string, rows []ClassRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>Class schedule</title>`)
		fmt.Fprintf(&b, `<script type="module" src="%s"></script>`, datastarScript)
		b.WriteString(`</head><body><header><h1>Class schedule</h1>`)
		if username != "" {
			fmt.Fprintf(&b, `<p>Signed in as %s</p>`, templ.EscapeString(username))
		}
		b.WriteString(`</header><main>`)
		b.WriteString(`<label for="type-filter">Class type</label> `)
		b.WriteString(`<select id="type-filter" data-on:change="@get('/schedule/classes?type=' + encodeURIComponent(evt.target.value))">`)
		b.WriteString(`<option value="">All</option>`)
		for _, t := range classTypes {
			fmt.Fprintf(&b, `<option value="%[1]s">%[1]s</option>`, templ.EscapeString(t))
		}
		b.WriteString(`</select>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := ClassTable(rows).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// ClassTable renders the schedule table. It is also sent on its own to
// replace the table in place when the filter changes.
func ClassTable(rows []ClassRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="%s">`, ClassTableID)
		if len(rows) == 0 {
			b.WriteString(`<p>No classes scheduled.</p></div>`)
			_, err := io.WriteString(w, b.String())
			return err
		}
		b.WriteString(`<table><thead><tr><th>ID</th><th>Type</th><th>Coach</th><th>Start</th><th>End</th></tr></thead><tbody>`)
		for _, r := range rows {
			fmt.Fprintf(&b, `<tr id="class-%d"><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				r.Class.ID,
				r.Class.ID,
				templ.EscapeString(r.Class.ClassType),
				templ.EscapeString(r.CoachName),
				templ.EscapeString(r.Class.StartTime),
				templ.EscapeString(r.Class.EndTime),
			)
		}
		b.WriteString(`</tbody></table></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
