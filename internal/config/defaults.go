package config

const (
	defaultRetileInput     = "./tb_imgs/L16_token_ori.png"
	defaultRetileOutput    = "./figures/L16_token_img.png"
	defaultPatchSize       = 256
	defaultRowLength       = 18
	defaultRowsOut         = 3
	defaultColsOut         = 6
	defaultCSVDir          = "tb_csv"
	defaultFiguresDir      = "figures"
	defaultSmoothWindow    = 5
	defaultFigureWidth     = 1200
	defaultFigureHeight    = 350
	defaultFigureFormat    = "png"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	minimumFigureWidth     = 300
	minimumFigureHeight    = 150
	defaultConfigLocation  = "~/.config/figprep/config.toml"
	defaultProjectFileName = "figprep.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Retile: Retile{
			Input:     defaultRetileInput,
			Output:    defaultRetileOutput,
			Patch:     defaultPatchSize,
			RowLength: defaultRowLength,
			Rows:      defaultRowsOut,
			Cols:      defaultColsOut,
		},
		Plot: Plot{
			CSVDir: defaultCSVDir,
			OutDir: defaultFiguresDir,
			Window: defaultSmoothWindow,
			Width:  defaultFigureWidth,
			Height: defaultFigureHeight,
			Kinds:  defaultPanelKinds(),
			Format: defaultFigureFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultPanelKinds() []string {
	return []string{"loss", "psnr", "ssim"}
}
