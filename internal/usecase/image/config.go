package image

const DefaultPageSize = 24

// MaxCachedPage is the deepest listing page kept in the cache. Deeper pages
// are read from the database on every request.
const MaxCachedPage = 10
