package main

import (
	"fmt"
	"io"

	"github.com/productcatalog/backend/internal/viewmodel"
)

// render prints the sorted catalog in groups headed "Product #<group>",
// numbering rows across groups
func render(w io.Writer, catalog *viewmodel.Catalog) {
	chunks := catalog.Chunks()
	if len(chunks) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}

	for chunkIndex, chunk := range chunks {
		if chunkIndex > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Product #%d\n", chunkIndex+1)

		for index, p := range chunk {
			n := 1 + chunkIndex*viewmodel.ChunkSize + index

			fmt.Fprintf(w, "%3d. %s\n", n, p.Name)
			fmt.Fprintf(w, "     Record:  %s\n", p.RecordID)
			fmt.Fprintf(w, "     ID:      %d\n", p.ID)
			fmt.Fprintf(w, "     Image:   %s\n", p.ImageURL)
			fmt.Fprintf(w, "     Count:   %d\n", p.Count)
			fmt.Fprintf(w, "     Size:    %dx%d\n", p.Size.Width, p.Size.Height)
			fmt.Fprintf(w, "     Weight:  %s\n", p.Weight)

			if !catalog.CommentsVisible(p.RecordID) {
				fmt.Fprintf(w, "     Comments: %d\n", len(p.Comments))
				continue
			}
			fmt.Fprintln(w, "     Comments:")
			for i, c := range p.Comments {
				fmt.Fprintf(w, "       [%d] %s\n", i, c)
			}
		}
	}
}
