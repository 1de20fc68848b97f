// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// statsRoots are the directories whose Go sources are counted.
var statsRoots = []string{"cmd", "internal", "pkg"}

// Stats prints Go lines of code per top-level directory as one JSON record.
func Stats() error {
	record := map[string]int{}
	var prodLines, testLines int

	for _, root := range statsRoots {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() || !strings.HasSuffix(path, ".go") {
				return nil
			}
			count, countErr := countLines(path)
			if countErr != nil {
				return nil
			}
			if strings.HasSuffix(path, "_test.go") {
				testLines += count
			} else {
				prodLines += count
				record["go_loc_"+root] += count
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	record["go_loc_prod"] = prodLines
	record["go_loc_test"] = testLines
	record["go_loc"] = prodLines + testLines

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
