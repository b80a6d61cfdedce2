package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otpgate/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			HMAC:       a.hmac,
			Clock:      a.clock,
			Generator:  a.otp,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
