// Package preset holds named configuration documents and expands the
// presets a document extends into a single layered Configuration.
//
// A Registry is an explicit value. Default returns a fresh registry seeded
// with the presets embedded in the binary; LoadDir adds project presets.
//
//	reg, err := preset.Default()
//	if err != nil {
//		return err
//	}
//	cfg, err := reg.Expand(doc)
//	if err != nil {
//		return err
//	}
//	rules := resolve.Resolve(cfg, "src/app.test.ts")
//
// Extended presets apply beneath the document that names them: their layers
// come first, then the document's own rules, then its overrides. An
// override's extends are expanded inside that override, so they only apply
// to the paths the override matches.
package preset
