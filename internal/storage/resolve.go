package storage

import "strings"

// PlaceholderImage is the single fallback shown wherever an image reference
// is missing: an inline gray "No Image" SVG, so the client never has to fetch
// a placeholder asset.
const PlaceholderImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMjAwIiBoZWlnaHQ9IjIwMCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMjAwIiBoZWlnaHQ9IjIwMCIgZmlsbD0iI2VlZWVlZSIvPjx0ZXh0IHRleHQtYW5jaG9yPSJtaWRkbGUiIHg9IjEwMCIgeT0iMTAwIiBmb250LXNpemU9IjE4IiBmaWxsPSIjYWFhYWFhIiBmb250LWZhbWlseT0ic2Fucy1zZXJpZiI+Tm8gSW1hZ2U8L3RleHQ+PC9zdmc+"

// ResolveDisplayURL is the one place that turns a stored image reference into
// something a client can render:
//
//   - empty reference: the shared placeholder;
//   - already-absolute (http(s) or data URI) or server-relative ("/...")
//     references: returned unchanged;
//   - bare storage references: prefixed with baseURL (or "/files" when
//     baseURL is empty).
//
// Every image the API ships out goes through this function, so the fallback
// policy lives in exactly one place.
func ResolveDisplayURL(baseURL, ref string) string {
	if ref == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "/") {
		return ref
	}
	if baseURL == "" {
		return "/files/" + ref
	}
	return strings.TrimRight(baseURL, "/") + "/" + ref
}

// Resolver binds ResolveDisplayURL to a base URL, in the shape the service
// layer's ResolveURL hooks expect.
func Resolver(baseURL string) func(string) string {
	return func(ref string) string { return ResolveDisplayURL(baseURL, ref) }
}
