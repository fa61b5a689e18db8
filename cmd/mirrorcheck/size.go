package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/aleister1102/mirrorcheck/internal/config"
)

// parseSize converts user input to a size in MB and checks its range.
func parseSize(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	size, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, common.NewValidationError("size", trimmed, "not a whole number")
	}
	if err := config.ValidateSize(size); err != nil {
		return 0, err
	}
	return size, nil
}

// promptSize asks for the size on out and reads one line from in.
func promptSize(in io.Reader, out io.Writer) (int, error) {
	_, _ = fmt.Fprintf(out, "File size to test in MB (%d-%d): ", config.MinSizeMB, config.MaxSizeMB)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, common.WrapError(err, "failed to read size")
	}
	return parseSize(line)
}
