package dataset

// FunctionalClassGroup returns the group prefix of a functional-class
// code: the first two characters, so "Ф3.1" → "Ф3". Codes shorter than
// two characters are returned unchanged.
func FunctionalClassGroup(code string) string {
	r := []rune(code)
	if len(r) < 2 {
		return code
	}
	return string(r[:2])
}

// IsIndustrialClass reports whether the class belongs to the industrial
// group Ф5. All other groups (Ф1–Ф4) are treated as general-occupancy.
func IsIndustrialClass(code string) bool {
	return equalFold(FunctionalClassGroup(code), "Ф5")
}

// FunctionalClassName returns the display name for a class code, or ""
// when the code is not in the table.
func (d *Dataset) FunctionalClassName(code string) string {
	for _, fc := range d.FunctionalClasses {
		if equalFold(fc.Code, code) {
			return fc.Name
		}
	}
	return ""
}

// HeightCategory resolves a building height to its category by scanning
// the ordered bound rows and returning the first whose [Min, Max)
// interval contains the height. Heights beyond every bound fall into
// the highest category.
func (d *Dataset) HeightCategory(height float64) string {
	for _, b := range d.HeightCategories {
		if height < b.Min {
			continue
		}
		if b.Max == nil || height < *b.Max {
			return b.Category
		}
	}
	if n := len(d.HeightCategories); n > 0 {
		return d.HeightCategories[n-1].Category
	}
	return ""
}
