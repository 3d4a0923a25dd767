// Test program for package document and navigation parsing
//
// Usage:
//
//	go run ./cmd/test/package_parser/main.go <epub-file-path>
//
// This program will:
// - Open and assemble the book
// - Display metadata (title, creator, language, etc.)
// - Summarize manifest items by media type
// - Show spine order
// - List table-of-contents entries
// - Show the cover image if found
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/yuanying/epubreader/internal/epub"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <epub-file-path>\n", os.Args[0])
		os.Exit(1)
	}

	epubPath := os.Args[1]

	fmt.Println("=== EPUB Package Parser Test ===")
	fmt.Printf("File: %s\n\n", epubPath)

	book, err := epub.ReadEPUB(epubPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading EPUB: %v\n", err)
		os.Exit(1)
	}
	defer book.Close()

	fmt.Printf("✓ EPUB parsed successfully\n")
	fmt.Printf("OPF Path:     %s\n", book.OPFPath)
	fmt.Printf("Content Root: %q\n\n", book.ContentRoot)

	md := book.Metadata
	fmt.Println("--- Metadata ---")
	fmt.Printf("Title:       %s\n", md.DisplayTitle())
	fmt.Printf("Creator:     %s\n", md.DisplayCreator())
	printOptional("Identifier:", md.Identifier)
	printOptional("Language:", md.Language)
	printOptional("Publisher:", md.Publisher)
	printOptional("Rights:", md.Rights)

	fmt.Printf("\n--- Manifest ---\n")
	fmt.Printf("Total items: %d\n\n", len(book.Manifest.Items))

	mediaTypes := make(map[string]int)
	for _, item := range book.Manifest.Items {
		mediaTypes[item.MediaType]++
	}
	keys := make([]string, 0, len(mediaTypes))
	for k := range mediaTypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("Items by media type:")
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, mediaTypes[k])
	}

	if cover, ok := book.Cover(); ok {
		fmt.Printf("\nCover Image: %s (%s)\n", cover.Item.Href, cover.DetectionMethod)
	} else {
		fmt.Println("\nCover Image: (not found)")
	}

	fmt.Printf("\n--- Spine ---\n")
	fmt.Printf("Total items: %d\n\n", len(book.Spine.Items))
	fmt.Println("Reading order:")
	for i, item := range book.Spine.Items {
		linear := "yes"
		if !item.Linear {
			linear = "no"
		}
		fmt.Printf("  %d. %s (linear: %s)\n", i+1, item.Item.Href, linear)
	}

	fmt.Printf("\n--- Table of Contents ---\n")
	fmt.Printf("Total entries: %d\n\n", len(book.TableOfContents.Items))
	for i, item := range book.TableOfContents.Items {
		if item.HasAnchor() {
			fmt.Printf("  %d. %s -> %s#%s\n", i+1, item.Label, item.Path, item.Anchor)
		} else {
			fmt.Printf("  %d. %s -> %s\n", i+1, item.Label, item.Path)
		}
	}

	fmt.Println("\n--- Special Items ---")
	hasSpecial := false
	for _, item := range book.Manifest.Items {
		if len(item.Properties) > 0 {
			hasSpecial = true
			fmt.Printf("  %s: %s (properties: %v)\n", item.ID, item.Href, item.Properties)
		}
	}
	if !hasSpecial {
		fmt.Println("  (no items with special properties)")
	}

	fmt.Println("\n=== Test Completed Successfully ===")
}

func printOptional(label string, value *string) {
	if value != nil {
		fmt.Printf("%-12s %s\n", label, *value)
	}
}
