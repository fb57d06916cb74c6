package discovery

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"launchpad/internal/domain"
)

// classify turns a launch folder file into a candidate
func classify(path string, d fs.DirEntry) (domain.Candidate, bool) {
	name := d.Name()
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))

	switch ext {
	case ".desktop":
		entry, err := readDesktopEntry(path)
		if err != nil || entry.hidden {
			return domain.Candidate{}, false
		}
		if entry.name == "" {
			entry.name = base
		}
		return domain.Candidate{Name: entry.name, Path: path, Kind: domain.KindDesktopEntry, Exec: entry.exec}, true
	case ".lnk", ".url":
		return domain.Candidate{Name: base, Path: path, Kind: domain.KindShortcut}, true
	}

	info, err := d.Info()
	if err != nil {
		return domain.Candidate{}, false
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		if info, err = os.Stat(path); err != nil {
			return domain.Candidate{}, false
		}
	}
	if !info.Mode().IsRegular() {
		return domain.Candidate{}, false
	}
	if isExecutable(info, ext) {
		return domain.Candidate{Name: base, Path: path, Kind: domain.KindExecutable}, true
	}
	return domain.Candidate{Name: base, Path: path, Kind: domain.KindFile}, true
}

func isExecutable(info fs.FileInfo, ext string) bool {
	if runtime.GOOS == "windows" {
		return ext == ".exe" || ext == ".bat" || ext == ".cmd"
	}
	return info.Mode().Perm()&0o111 != 0
}

type desktopEntry struct {
	name   string
	exec   string
	hidden bool
}

// readDesktopEntry reads the [Desktop Entry] group of a freedesktop file.
// Localized keys are ignored.
func readDesktopEntry(path string) (desktopEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return desktopEntry{}, err
	}
	defer f.Close()

	var entry desktopEntry
	inGroup := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inGroup = line == "[Desktop Entry]"
			continue
		}
		if !inGroup {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			entry.name = value
		case "Exec":
			entry.exec = stripFieldCodes(value)
		case "NoDisplay", "Hidden":
			if strings.EqualFold(value, "true") {
				entry.hidden = true
			}
		case "Type":
			if value != "Application" && value != "Link" {
				entry.hidden = true
			}
		}
	}
	return entry, scanner.Err()
}

// stripFieldCodes drops %f, %U and friends from an Exec line
func stripFieldCodes(exec string) string {
	fields := strings.Fields(exec)
	kept := fields[:0]
	for _, field := range fields {
		if len(field) == 2 && field[0] == '%' {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}
