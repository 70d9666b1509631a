package catalog

// skuPrefixLen is how much of the product name seeds the stock code.
const skuPrefixLen = 4

// GenerateSKU derives a variant's stock code from the owning product's name
// and the variant's raw name: the first four characters of the product name
// taken verbatim (case preserved, no trimming) joined to the variant name
// with a dash. Deterministic for a given (productName, variantName) pair.
//
// Known weak invariant: the scheme is not collision free. Two products whose
// names share a four-character prefix produce the same SKU for identically
// named variants. Callers that need hard uniqueness must layer their own
// disambiguation on top; this function intentionally does not.
func GenerateSKU(productName, variantName string) string {
	prefix := []rune(productName)
	if len(prefix) > skuPrefixLen {
		prefix = prefix[:skuPrefixLen]
	}
	return string(prefix) + "-" + variantName
}
