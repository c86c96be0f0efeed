// Package seeds holds the named sample texts offered by the workbench.
//
// Seeds cover the Kryptos sections and the Morse code fragments found on
// the sculpture. The ciphertext entries are placeholders and are empty until
// a caller supplies its own working strings, so callers should check
// [Seed.Empty] before using one as grid input.
//
//	s, ok := seeds.Lookup("k3Plain")
//	g := scytale.Build(s.Text, 8, scytale.Options{})
//
// [ApplyDefault] fills a blank input with one of the Morse word lists.
package seeds
