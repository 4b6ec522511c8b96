package resolve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

// resolvePath substitutes every placeholder of the endpoint template. Supplied
// values win, then defaults of required parameters; optional and unknown
// placeholders vanish. A required placeholder with neither fails unless force
// is set, in which case it is emptied and a warning is returned.
func (r *Resolver) resolvePath(ctx context.Context, d *endpoint.Descriptor, values map[string]string, force bool) (string, []string, error) {
	var (
		b        strings.Builder
		warnings []string
	)
	for _, seg := range d.Template().Segments() {
		b.WriteString(seg.Literal)
		if seg.Param == "" {
			continue
		}

		pp, known := d.PathParam(seg.Param)
		if value, ok := values[seg.Param]; ok {
			b.WriteString(pp.Wrap(value))
			continue
		}

		switch {
		case !known:
			r.logger.DebugContext(ctx, "removing undeclared placeholder",
				slog.String("endpoint", d.Name), slog.String("param", seg.Param))
		case !pp.Required:
			r.logger.DebugContext(ctx, "removing optional path param",
				slog.String("endpoint", d.Name), slog.String("param", seg.Param))
		case pp.Default != "":
			value := pp.Default
			if pp.Kind == endpoint.KindBool {
				value, _ = pp.BoolText(value)
			}
			r.logger.DebugContext(ctx, "using default for path param",
				slog.String("endpoint", d.Name), slog.String("param", seg.Param), slog.String("default", pp.Default))
			b.WriteString(pp.Wrap(value))
		case force:
			msg := "missing required path parameter {" + seg.Param + "}, proceeding anyway per force flag"
			r.logger.WarnContext(ctx, msg, slog.String("endpoint", d.Name))
			warnings = append(warnings, msg)
		default:
			return "", nil, &Error{Kind: MissingPathParam, Endpoint: d.Name, Params: []string{seg.Param}, Note: d.Note}
		}
	}
	return b.String(), warnings, nil
}
