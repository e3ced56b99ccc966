package certificates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound1HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 4.2, round1(4.15))
	assert.Equal(t, 3.5, round1(3.45))
	assert.Equal(t, 0.0, round1(0.04))
	assert.Equal(t, 5.0, round1(4.96))
}

func TestGradesTable(t *testing.T) {
	subjects := []GradedSubject{
		{Name: "Anatomía", ModuleLabel: "Módulo 1", Grade: 4.5},
		{Name: "Fisiología", Grade: 3.8},
	}

	table := gradesTable(subjects)

	assert.Equal(t, []string{"Asignatura", "Módulo", "Nota"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Anatomía", "Módulo 1", "4.5"}, table.Rows[0])
	// Missing module label renders the N/A placeholder, never blank.
	assert.Equal(t, []string{"Fisiología", "N/A", "3.8"}, table.Rows[1])
	// Mean of 4.5 and 3.8 is 4.15, rounded half away from zero to 4.2.
	assert.Equal(t, []string{"Promedio", "", "4.2"}, table.AggregateRow)
	assert.Empty(t, table.Placeholder)
}

func TestGradesTableEmptySubjects(t *testing.T) {
	table := gradesTable(nil)

	assert.Equal(t, noSubjectsMessage, table.Placeholder)
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"Promedio", "", noGradeAverage}, table.AggregateRow)
}

func TestProgramAverage(t *testing.T) {
	avg, ok := programAverage([]GradedSubject{{Grade: 4.5}, {Grade: 3.8}})
	assert.True(t, ok)
	assert.Equal(t, 4.2, avg)

	_, ok = programAverage(nil)
	assert.False(t, ok)
}

func TestModulesTable(t *testing.T) {
	modules := []StudyModule{
		{Name: "Módulo Básico", Subjects: []string{"Anatomía", "Nutrición"}},
		{Name: "Módulo Avanzado", Subjects: []string{"Biomecánica"}},
	}

	table := modulesTable(modules)

	assert.Equal(t, []string{"Módulo", "Asignaturas"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "Anatomía\nNutrición", table.Rows[0][1])
	assert.Equal(t, "Biomecánica", table.Rows[1][1])
}

func TestModulesTableEmpty(t *testing.T) {
	table := modulesTable([]StudyModule{})

	assert.Empty(t, table.Rows)
	assert.Equal(t, noModulesMessage, table.Placeholder)
}
