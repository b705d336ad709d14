package storage

import "strings"

// FormatName joins an identifier and the original filename into a stored name.
// No escaping is applied; the identifier must not contain the delimiter.
func FormatName(id, filename, delimiter string) string {
	return id + delimiter + filename
}

// ParseName splits a stored name at the first delimiter occurrence, so
// filenames that themselves contain the delimiter decode intact.
// Names without the delimiter are returned whole as both id and filename.
func ParseName(storedName, delimiter string) (id string, filename string) {
	if delimiter == "" {
		return storedName, storedName
	}
	index := strings.Index(storedName, delimiter)
	if index == -1 {
		return storedName, storedName
	}
	return storedName[:index], storedName[index+len(delimiter):]
}
