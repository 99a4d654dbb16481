// Package nbkit is the Composition Root for the nbkit library.
//
// It connects the notebook model (pkg/core) with its formats (pkg/codec) and
// the filesystem adapter (pkg/adapters/fs).
//
// Formats:
//
//   - **.ipynb / .json**: the JSON interchange format (read and write). Outputs
//     and metadata are not carried over.
//   - **.yaml / .yml**: the same interchange structure as YAML (read and write).
//   - **.py**: the py-percent script format, where "# %%" lines delimit cells
//     (write, plus a best-effort reader that assigns fresh cell ids).
//   - **.txt / .outline**: a tree outline of the notebook (write only).
//
// Usage:
//
//	nb, err := nbkit.Load(ctx, "hello-world.ipynb", nbkit.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	fmt.Println(nbkit.Outline(nb))
//	err = nbkit.WritePercent(ctx, nb, "hello-world.py")
package nbkit
