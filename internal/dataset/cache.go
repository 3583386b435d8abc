package dataset

import "sync"

// Cache loads one dataset at most once and hands the same result to every caller.
type Cache struct {
	path string
	opt  Options
	load func(string, Options) (*Dataset, error)

	once sync.Once
	ds   *Dataset
	err  error
}

// NewCache returns a cache for the dataset at path.
func NewCache(path string, opt Options) *Cache {
	return &Cache{path: path, opt: opt, load: Load}
}

// Path returns the source path of the cached dataset.
func (c *Cache) Path() string { return c.path }

// Get loads the dataset on first use; later calls return the same handle or error.
func (c *Cache) Get() (*Dataset, error) {
	c.once.Do(func() {
		c.ds, c.err = c.load(c.path, c.opt)
	})
	return c.ds, c.err
}
