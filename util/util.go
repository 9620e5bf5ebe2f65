package util

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
)

func GenUUID() string {
	return uuid.New().String()
}

// ParseTags accepts either a JSON array or a comma separated list and
// returns the trimmed, non-empty tags.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			return cleanTags(tags)
		}
	}
	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ImageToWebp converts an image file (jpeg/png) to a webp file next to it.
// Returns the new file path, or the empty string if conversion failed.
func ImageToWebp(imagePath string, quality float32) string {
	in, err := os.Open(imagePath)
	if err != nil {
		return ""
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return ""
	}

	ext := filepath.Ext(imagePath)
	outputPath := strings.TrimSuffix(imagePath, ext) + ".webp"
	out, err := os.Create(outputPath)
	if err != nil {
		return ""
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: quality}); err != nil {
		os.Remove(outputPath)
		return ""
	}
	return outputPath
}

// GenerateNewFileName is a helper function to generate a new file name
// when the target already exists.
func GenerateNewFileName(filePath string) string {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return filePath // file does not exist, return the same name
	}

	dir := filepath.Dir(filePath)
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	fileName := strings.TrimSuffix(base, ext)

	existingFiles, err := filepath.Glob(filepath.Join(dir, fileName+"_*[0-9]"+ext))
	if err != nil {
		return filePath
	}

	index := 1
	for _, existingFile := range existingFiles {
		existingBase := filepath.Base(existingFile)
		existingName := strings.TrimSuffix(existingBase, ext)
		var existingIndex int
		fileName = strings.Split(existingName, "_")[0]
		existingIndex, err = strconv.Atoi(strings.Split(existingName, "_")[1])
		if err == nil && existingIndex >= index {
			index = existingIndex + 1
		}
	}
	newFileName := fmt.Sprintf("%s_%d%s", fileName, index, ext)
	return filepath.Join(dir, newFileName)
}
