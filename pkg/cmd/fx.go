package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(parseCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(rewriteCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(execCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
