package export

import (
	"path"
	"regexp"
	"strings"

	"proofsheet/models"
)

// OutputDir is the folder the generated script copies selected files into.
const OutputDir = "SELECTED"

const (
	lineEnding = "\r\n"
	extension  = ".bat"
)

var whitespace = regexp.MustCompile(`\s+`)

// Script is a generated Windows batch file.
type Script struct {
	Filename string
	Lines    []string
	Copies   int
}

// Text joins the script lines with CRLF line endings.
func (s *Script) Text() string {
	return strings.Join(s.Lines, lineEnding) + lineEnding
}

// Build turns a project's selection into a copy script. Each selected path is
// copied from next to the script into a mirrored tree under SELECTED. Every
// copy is preceded by its own directory guard so the script can be rerun.
//
// An empty selection still yields a usable header-only script; the error is
// then models.ErrNoSelection.
func Build(project *models.Project) (*Script, error) {
	script := &Script{
		Filename: Filename(project.Name),
		Lines: []string{
			`@echo off`,
			`echo Copying selected files...`,
			`if not exist "` + OutputDir + `" mkdir "` + OutputDir + `"`,
		},
	}

	for _, rel := range project.Selected {
		rel, ok := scriptPath(rel)
		if !ok {
			continue
		}

		winPath := escape(toWindows(rel))
		if dir := path.Dir(rel); dir != "." {
			target := OutputDir + `\` + escape(toWindows(dir))
			script.Lines = append(script.Lines, `if not exist "`+target+`" mkdir "`+target+`"`)
		}
		script.Lines = append(script.Lines,
			`if exist "%~dp0`+winPath+`" copy /y "%~dp0`+winPath+`" "`+OutputDir+`\`+winPath+`" >nul`)
		script.Copies++
	}

	script.Lines = append(script.Lines, `echo Done!`)

	if script.Copies == 0 {
		return script, models.ErrNoSelection
	}
	return script, nil
}

// Filename derives the download name from the project name, with runs of
// whitespace collapsed to underscores.
func Filename(projectName string) string {
	base := whitespace.ReplaceAllString(strings.TrimSpace(projectName), "_")
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, base)
	if base == "" {
		base = "project"
	}
	return base + "_selection" + extension
}

// scriptPath cleans a stored selection entry. Absolute paths, parent
// segments and Windows separators or drive letters are refused so every copy
// stays inside the script's folder and SELECTED.
func scriptPath(p string) (string, bool) {
	if p == "" || path.IsAbs(p) || strings.ContainsAny(p, `\:"`) {
		return "", false
	}
	p = path.Clean(p)
	if p == "." {
		return "", false
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", false
		}
	}
	return p, true
}

func toWindows(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

// escape doubles percent signs so cmd.exe does not expand them as variables.
func escape(p string) string {
	return strings.ReplaceAll(p, "%", "%%")
}
