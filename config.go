package archon

// Config holds global tunables for the storage engine that are not part of
// the data model proper.
var Config config = config{
	initialColumnCapacity: blobColumnInitialCapacity,
}

type config struct {
	initialColumnCapacity uint32
}

// SetInitialColumnCapacity overrides the element count a freshly allocated
// BlobColumn starts with. Must be called before any ComponentRegistry or
// World is built; it has no effect on columns already allocated.
func (c *config) SetInitialColumnCapacity(n uint32) {
	c.initialColumnCapacity = n
}

// InitialColumnCapacity returns the current initial column capacity.
func (c *config) InitialColumnCapacity() uint32 {
	return c.initialColumnCapacity
}
