// Package brochure lays out real-estate brochures as fixed A4 pages and
// exports them to PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, export a brochure, and close when done:
//
//	conv, err := brochure.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Export(ctx, content.Default(), brochure.ExportOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.PDF, 0644)
//
// # Pipeline
//
//  1. Pagination: the content is planned into a page sequence (cover,
//     location, amenities with overflow pages, floor plan groups)
//  2. Rendering: each page becomes a 210mm x 297mm section from the
//     template set; landscape mode pairs pages into spreads
//  3. Export: print-excluded nodes (placeholder boxes, blank spread halves)
//     are removed, print CSS is injected, and Chrome prints one page per sheet
//
// Rendering is deterministic: the same content always yields the same pages.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := brochure.NewConverter(
//	    brochure.WithTimeout(2 * time.Minute),
//	    brochure.WithStyle("default"),
//	    brochure.WithAssetPath("/path/to/custom/assets"),
//	    brochure.WithBackend(brochure.BackendChromedp),
//	)
//
// # Parallel Processing
//
// A single Converter may be shared across goroutines. For batch exports
// that should not share one browser, use ConverterPool:
//
//	pool := brochure.NewConverterPool(brochure.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package brochure
