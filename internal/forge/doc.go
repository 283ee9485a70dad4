// Package forge provides an abstraction over the git hosting service the new
// repository is created on.
//
// The [Forge] interface covers what scaffolding needs from a host: creating
// a repository from a template, cloning it, deleting it again on rollback,
// and a few probes used by the doctor command.
//
// # Implementations
//
// [GitHub] drives the gh CLI. Commands that change remote state stream gh's
// own output to the terminal; probes capture it.
//
// # Usage
//
//	f, err := forge.ByName("github")
//	if err != nil {
//		return err
//	}
//	if err := f.Check(ctx); err != nil {
//		return err
//	}
//	err = f.CreateFromTemplate(ctx, forge.CreateParams{
//		Name:     "my-app",
//		Template: "darrenkuro/repo-template",
//	})
package forge
