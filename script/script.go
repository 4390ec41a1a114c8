// Package script materializes a plan as ffmpeg concat demuxer inputs: one
// list file per record plus a shell script that runs the whole batch.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"concatplan/catalog"
	"concatplan/command/concatcmd"
	"concatplan/models"
)

// Generator writes concat list files and the batch script for a plan.
//
// Strict mode turns an unresolvable member id into an error; otherwise the
// record is skipped with a warning entry in the result.
type Generator struct {
	listsDir   string
	outputDir  string
	strictMode bool
}

// Result reports what a generation run produced.
type Result struct {
	ListFiles  []string
	ScriptPath string
	Skipped    []string
}

// NewGenerator creates a generator writing list files under listsDir and
// pointing ffmpeg outputs at outputDir.
func NewGenerator(listsDir, outputDir string, strictMode bool) *Generator {
	return &Generator{
		listsDir:   listsDir,
		outputDir:  outputDir,
		strictMode: strictMode,
	}
}

// Generate writes one concat list file per record and a run_concat.sh
// script invoking ffmpeg for each, resolving member paths through the
// catalog.
func (g *Generator) Generate(records []*models.ConcatRecord, cat *catalog.Catalog) (*Result, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to generate scripts for")
	}

	if err := os.MkdirAll(g.listsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create list directory: %w", err)
	}

	result := &Result{}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	script.WriteString("# Concatenates planned source videos with the ffmpeg concat demuxer.\n")
	script.WriteString("set -e\n\n")
	fmt.Fprintf(&script, "mkdir -p '%s'\n\n", escapeSingleQuotes(g.outputDir))

	for _, record := range records {
		listPath, err := g.writeListFile(record, cat)
		if err != nil {
			if g.strictMode {
				return nil, err
			}
			result.Skipped = append(result.Skipped,
				fmt.Sprintf("%s: %v", record.ConcatVideo, err))
			continue
		}
		result.ListFiles = append(result.ListFiles, listPath)

		outputPath := filepath.Join(g.outputDir, record.ConcatVideo)
		cmdLine, err := concatcmd.NewConcatBuilder(listPath, outputPath).DryRun()
		if err != nil {
			return nil, fmt.Errorf("failed to build command for %s: %w", record.ConcatVideo, err)
		}

		fmt.Fprintf(&script, "%s\n", cmdLine)
	}

	if len(result.ListFiles) == 0 {
		return nil, fmt.Errorf("no records could be resolved against the catalog")
	}

	scriptPath := filepath.Join(g.listsDir, "run_concat.sh")
	if err := os.WriteFile(scriptPath, []byte(script.String()), 0755); err != nil {
		return nil, fmt.Errorf("failed to write concat script: %w", err)
	}
	result.ScriptPath = scriptPath

	return result, nil
}

// writeListFile writes the concat demuxer list for one record.
//
// Format, one member per line:
//
//	file '/abs/path/to/clip.mp4'
func (g *Generator) writeListFile(record *models.ConcatRecord, cat *catalog.Catalog) (string, error) {
	var list strings.Builder

	for _, id := range record.Videos {
		video, ok := cat.Get(id)
		if !ok {
			return "", fmt.Errorf("member %s is not in the catalog", id)
		}

		absPath, err := filepath.Abs(video.Path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path for %s: %w", id, err)
		}

		fmt.Fprintf(&list, "file '%s'\n", escapeSingleQuotes(absPath))
	}

	name := strings.TrimSuffix(record.ConcatVideo, ".mp4") + ".txt"
	listPath := filepath.Join(g.listsDir, name)

	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write list file %s: %w", listPath, err)
	}

	return listPath, nil
}

// escapeSingleQuotes escapes ' as '\'' for shell and concat list use.
func escapeSingleQuotes(path string) string {
	return strings.ReplaceAll(path, "'", "'\\''")
}
