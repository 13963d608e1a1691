package domain

type Page struct {
	Number int
	Size   int
}

func NewPage(pageNumber, pageSize int) Page {
	pNumber := 1
	if pageNumber > 0 {
		pNumber = pageNumber
	}

	pSize := 25
	if pageSize > 0 {
		pSize = pageSize
	}

	return Page{
		Number: pNumber,
		Size:   pSize,
	}
}

// Offset translates the page into the zero-based offset the ledger API
// expects.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
