package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofsheet/models"
)

func countContaining(lines []string, substr string) int {
	n := 0
	for _, line := range lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func TestBuild_FolderAndRootFiles(t *testing.T) {
	project := &models.Project{
		Name:     "Smith Wedding",
		Selected: []string{"A/img1.jpg", "img2.jpg"},
	}

	script, err := Build(project)
	require.NoError(t, err)

	assert.Equal(t, "Smith_Wedding_selection.bat", script.Filename)
	assert.Equal(t, 2, script.Copies)

	assert.Equal(t, []string{
		`@echo off`,
		`echo Copying selected files...`,
		`if not exist "SELECTED" mkdir "SELECTED"`,
		`if not exist "SELECTED\A" mkdir "SELECTED\A"`,
		`if exist "%~dp0A\img1.jpg" copy /y "%~dp0A\img1.jpg" "SELECTED\A\img1.jpg" >nul`,
		`if exist "%~dp0img2.jpg" copy /y "%~dp0img2.jpg" "SELECTED\img2.jpg" >nul`,
		`echo Done!`,
	}, script.Lines)

	assert.Equal(t, 1, countContaining(script.Lines, `mkdir "SELECTED\`))
	assert.Equal(t, 2, countContaining(script.Lines, "copy /y"))
}

func TestBuild_PreservesOrderAndNestedFolders(t *testing.T) {
	project := &models.Project{
		Name:     "Shoot",
		Selected: []string{"Day 2/Portraits/z.jpg", "Day 1/a.jpg", "Day 2/Portraits/b.jpg"},
	}

	script, err := Build(project)
	require.NoError(t, err)

	var copies []string
	for _, line := range script.Lines {
		if strings.Contains(line, "copy /y") {
			copies = append(copies, line)
		}
	}
	require.Len(t, copies, 3)
	assert.Contains(t, copies[0], `Day 2\Portraits\z.jpg`)
	assert.Contains(t, copies[1], `Day 1\a.jpg`)
	assert.Contains(t, copies[2], `Day 2\Portraits\b.jpg`)

	// every copy gets its own guard, even for a repeated folder
	assert.Equal(t, 2, countContaining(script.Lines, `mkdir "SELECTED\Day 2\Portraits"`))
}

func TestBuild_EmptySelection(t *testing.T) {
	script, err := Build(&models.Project{Name: "Empty", Selected: []string{}})

	assert.True(t, errors.Is(err, models.ErrNoSelection))
	require.NotNil(t, script)
	assert.Equal(t, 0, script.Copies)
	assert.Equal(t, []string{
		`@echo off`,
		`echo Copying selected files...`,
		`if not exist "SELECTED" mkdir "SELECTED"`,
		`echo Done!`,
	}, script.Lines)
}

func TestBuild_EscapesPercent(t *testing.T) {
	script, err := Build(&models.Project{Name: "P", Selected: []string{"100%/a.jpg"}})
	require.NoError(t, err)
	assert.Contains(t, script.Text(), `"%~dp0100%%\a.jpg"`)
}

func TestBuild_SkipsPathsOutsideTree(t *testing.T) {
	script, err := Build(&models.Project{
		Name: "P",
		Selected: []string{
			"../x.jpg",
			"A/../../y.jpg",
			"/etc/passwd",
			`..\z.jpg`,
			"C:/photos/a.jpg",
			`A/"b.jpg`,
			"A/./ok.jpg",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, script.Copies)
	assert.Contains(t, script.Text(), `"SELECTED\A\ok.jpg"`)
	assert.NotContains(t, script.Text(), `..\`)
	assert.NotContains(t, script.Text(), "y.jpg")
	assert.NotContains(t, script.Text(), "passwd")
}

func TestBuild_OnlyUnsafePaths(t *testing.T) {
	script, err := Build(&models.Project{Name: "P", Selected: []string{"../x.jpg"}})
	assert.ErrorIs(t, err, models.ErrNoSelection)
	assert.Equal(t, 0, script.Copies)
}

func TestScriptText_UsesCRLF(t *testing.T) {
	script, _ := Build(&models.Project{Name: "P", Selected: []string{"a.jpg"}})
	text := script.Text()

	assert.True(t, strings.HasPrefix(text, "@echo off\r\n"))
	assert.True(t, strings.HasSuffix(text, "echo Done!\r\n"))
	assert.NotContains(t, strings.ReplaceAll(text, "\r\n", ""), "\n")
}

func TestFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Smith Wedding", "Smith_Wedding_selection.bat"},
		{"  Many   spaces\there ", "Many_spaces_here_selection.bat"},
		{"a/b:c", "a_b_c_selection.bat"},
		{"", "project_selection.bat"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.input))
		})
	}
}
