// Package stopwords holds the per-language stop-word lists used by the normalizer.
package stopwords

import (
	"bufio"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/dtnitsch/corpus-prep/models"
)

//go:embed data/*.txt
var lists embed.FS

// listNames maps an ISO 639-1 code to the name of its stop-word list.
var listNames = map[string]string{
	"en": "english",
	"es": "spanish",
}

// Set is a read-only stop-word set. It is built once at init and shared by
// every normalization call.
type Set map[string]struct{}

// Contains reports whether word is a stop word. word must already be lowercase.
func (s Set) Contains(word string) bool {
	_, exists := s[word]
	return exists
}

var byList map[string]Set

func init() {
	byList = make(map[string]Set, len(listNames))
	for _, name := range listNames {
		set, err := load(name)
		if err != nil {
			panic(err)
		}
		byList[name] = set
	}
}

func load(name string) (Set, error) {
	f, err := lists.Open("data/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("failed to open stop-word list %s: %w", name, err)
	}
	defer f.Close()

	set := make(Set)
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		w := strings.ToLower(strings.TrimSpace(scan.Text()))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stop-word list %s: %w", name, err)
	}
	return set, nil
}

// ListName resolves a language code to its stop-word list name.
func ListName(code string) (string, error) {
	name, ok := listNames[strings.ToLower(code)]
	if !ok {
		return "", &models.UnsupportedLanguageError{Code: code}
	}
	return name, nil
}

// ForLanguage returns the stop-word set for a language code.
func ForLanguage(code string) (Set, error) {
	name, err := ListName(code)
	if err != nil {
		return nil, err
	}
	return byList[name], nil
}

// Supported lists the language codes that have a stop-word list.
func Supported() []string {
	codes := make([]string, 0, len(listNames))
	for code := range listNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
