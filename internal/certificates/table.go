package certificates

import (
	"math"
	"strconv"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

// Placeholder tokens used where expected data is absent. The document must
// always be producible, so missing data renders as a defined substitute,
// never as a blank or a broken table.
const (
	noGradeAverage     = "—" // em dash sentinel for an empty grade list
	noModuleLabel      = "N/A"
	noModulesMessage   = "No hay módulos registrados para este programa."
	noSubjectsMessage  = "No hay asignaturas registradas para este programa."
	missingNumberToken = "___"
)

// round1 rounds to exactly one decimal digit, half away from zero. The same
// helper backs per-program and overall averages so redisplayed values always
// match computed ones.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// formatGrade renders a grade with exactly one decimal digit.
func formatGrade(g float64) string {
	return strconv.FormatFloat(g, 'f', 1, 64)
}

// gradesTable produces the transcript table for one program: a header row,
// one row per graded subject, and a styled trailing aggregate row. An empty
// subject list yields a single full-width placeholder row.
func gradesTable(subjects []GradedSubject) document.TableModel {
	table := document.TableModel{
		Columns: []string{"Asignatura", "Módulo", "Nota"},
	}

	if len(subjects) == 0 {
		table.Placeholder = noSubjectsMessage
		table.AggregateRow = []string{"Promedio", "", noGradeAverage}
		return table
	}

	sum := 0.0
	for _, s := range subjects {
		label := s.ModuleLabel
		if label == "" {
			label = noModuleLabel
		}
		table.Rows = append(table.Rows, []string{s.Name, label, formatGrade(round1(s.Grade))})
		sum += s.Grade
	}

	avg := round1(sum / float64(len(subjects)))
	table.AggregateRow = []string{"Promedio", "", formatGrade(avg)}
	return table
}

// programAverage computes the rounded arithmetic mean of a program's grades.
// The second return is false for an empty subject list, which has no defined
// average and is excluded from the overall aggregate.
func programAverage(subjects []GradedSubject) (float64, bool) {
	if len(subjects) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range subjects {
		sum += s.Grade
	}
	return round1(sum / float64(len(subjects))), true
}

// modulesTable produces the two-column study-enrollment table mapping module
// names to their newline-joined subject lists.
func modulesTable(modules []StudyModule) document.TableModel {
	table := document.TableModel{
		Columns: []string{"Módulo", "Asignaturas"},
	}

	if len(modules) == 0 {
		table.Placeholder = noModulesMessage
		return table
	}

	for _, m := range modules {
		subjects := ""
		for i, s := range m.Subjects {
			if i > 0 {
				subjects += "\n"
			}
			subjects += s
		}
		table.Rows = append(table.Rows, []string{m.Name, subjects})
	}
	return table
}
