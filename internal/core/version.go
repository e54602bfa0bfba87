package core

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"monorel/internal/types"
)

// NextVersion applies a resolved bump to a current semver string.
// Severity bumps step the respective component and clear any prerelease
// and build metadata. Channel bumps keep the core version and set the
// prerelease to "<channel>.<identity>".
func NextVersion(current string, kind types.BumpKind, identity string) (string, error) {
	version, err := semver.NewVersion(current)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", current)).
			WithCause(err)
	}
	if kind.IsChannel() {
		if identity == "" {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("channel bump requires a build identity")
		}
		next, err := version.SetPrerelease(fmt.Sprintf("%s.%s", kind.Channel(), identity))
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to set prerelease identity").
				WithCause(err)
		}
		next, err = next.SetMetadata("")
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to clear build metadata").
				WithCause(err)
		}
		return next.String(), nil
	}
	switch kind.Severity() {
	case types.SeverityMajor:
		return semver.New(version.Major()+1, 0, 0, "", "").String(), nil
	case types.SeverityMinor:
		return semver.New(version.Major(), version.Minor()+1, 0, "", "").String(), nil
	case types.SeverityPatch:
		return semver.New(version.Major(), version.Minor(), version.Patch()+1, "", "").String(), nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported bump kind: %s", kind))
	}
}
