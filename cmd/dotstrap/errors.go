package dotstrap

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/style"
	"github.com/rs/zerolog/log"
)

var errorHints = []struct {
	code errors.ErrorCode
	hint string
}{
	{errors.ErrSymlinkConflict, MsgHintSymlinkConflict},
	{errors.ErrUnsupportedShell, MsgHintUnsupportedShell},
	{errors.ErrToolMissing, MsgHintToolMissing},
}

// ErrorHint returns a suggestion for the first known code in err's chain
func ErrorHint(err error) string {
	for _, h := range errorHints {
		if errors.IsErrorCode(err, h.code) {
			return h.hint
		}
	}
	return ""
}

// ReportError logs err with its code and details, then prints it and any
// hint to w
func ReportError(w io.Writer, err error) {
	log.Error().
		Err(err).
		Str("code", string(errors.GetErrorCode(err))).
		Fields(errors.GetErrorDetails(err)).
		Msg("Command failed")

	_, _ = fmt.Fprintln(w, style.Error(err))
	if hint := ErrorHint(err); hint != "" {
		_, _ = fmt.Fprintln(w, hint)
	}
}
