package encode

type EncodeOption func(*EncState)

// EncodeColors highlights markup for a terminal. The output is then no longer
// meant to be parsed again.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeFrontmatter controls whether a frontmatter node is written. It is on
// by default.
func EncodeFrontmatter(v bool) EncodeOption {
	return func(es *EncState) { es.frontmatter = v }
}

// EncodeBullets sets the two bullet characters unordered lists alternate
// between. Adjacent lists of the same kind would otherwise read back as one.
func EncodeBullets(a, b byte) EncodeOption {
	return func(es *EncState) { es.bullets = [2]byte{a, b} }
}
