// Test program for EPUB archive access
//
// Usage:
//
//	go run ./cmd/test/archive_reader/main.go <epub-file-path> (<entry-name> ...)
//
// This program exercises the following functionality:
// - Opening EPUB files (ZIP archive)
// - Validating the mimetype entry
// - Locating the package document through container.xml
// - Listing all entries in the archive
// - Reading entries as UTF-8 text
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/yuanying/epubreader/internal/epub"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/test/archive_reader/main.go <epub-file> (<entry-name> ...)")
		os.Exit(1)
	}

	epubPath := os.Args[1]
	entryNames := os.Args[2:]

	fmt.Printf("Opening EPUB file: %s\n", epubPath)
	archive, err := epub.OpenArchive(epubPath)
	if err != nil {
		log.Fatalf("Failed to open EPUB: %v", err)
	}
	defer archive.Close()
	fmt.Printf("✓ EPUB opened successfully\n")

	if err := archive.ValidateMimetype(); err != nil {
		fmt.Printf("⚠ mimetype: %v\n", err)
	} else {
		fmt.Printf("✓ mimetype is valid\n")
	}

	opfPath, err := archive.PackagePath()
	if err != nil {
		log.Fatalf("Failed to locate package document: %v", err)
	}
	fmt.Printf("OPF Path: %s\n\n", opfPath)

	names := archive.Names()
	fmt.Printf("Total entries: %d\n", len(names))
	fmt.Println("\nEntry list:")
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}

	fmt.Println("\nReading package document...")
	opf, err := archive.ReadEntry(opfPath)
	if err != nil {
		log.Fatalf("Failed to read OPF: %v", err)
	}
	fmt.Printf("✓ OPF read successfully (%d bytes)\n", len(opf))

	for _, name := range entryNames {
		fmt.Printf("\nReading entry: %s\n", name)
		content, err := archive.ReadEntry(name)
		if err != nil {
			log.Fatalf("Failed to read entry %s: %v", name, err)
		}
		fmt.Printf("✓ Entry %s read successfully (%d bytes)\n", name, len(content))
		fmt.Printf("Content:\n%s\n", content)
	}

	fmt.Println("\n✓ All checks passed!")
}
