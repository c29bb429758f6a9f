package product

// Mapping is a resolved correspondence from a raw table's header positions
// to the canonical fields. Built once per table by schema.Resolve.
type Mapping struct {
	Title int
	Url   int
	Image int
	Price int
}
