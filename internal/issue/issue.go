// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DeveloperDirNotFoundId Id = iota + 1
	ConfigNotFoundId
	ConfigParseErrorId
	PathInvalidId
	CommandNotFoundId
	ExecFailedId
	TargetTripleUnavailableId
	SettingsLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	developerDirNotFoundIssue = &Issue{
		id: DeveloperDirNotFoundId,
		mdMsg: `
# No developer directory!

xcrun needs a developer root holding the SDKs/ and Toolchains/ trees.

## Lookup order:
1. The DEVELOPER_DIR environment variable
2. The cache file ~/.xcdev.dat (its content is used as-is)

## Things you can try:
- Point DEVELOPER_DIR at your developer root:
~~~
$ export DEVELOPER_DIR=/opt/Developer
~~~

- Or write the path to the cache file, without a trailing newline:
~~~
$ printf '%s' /opt/Developer > ~/.xcdev.dat
~~~`,
	}

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# Metadata file not found!

Every SDK and toolchain bundle carries an info.ini, and the default
selection lives in /etc/xcrun.ini.

## Things you can try:
- Check that the bundle directory contains info.ini
- Select an SDK and toolchain explicitly so the default file is not needed:
~~~
$ xcrun --sdk iPhoneOS10.3 --toolchain ios-10 clang --version
~~~

- Or create the default selection file:
~~~ini
[SDK]
name=MacOSX10.14

[TOOLCHAIN]
name=osx
~~~`,
	}

	configParseErrorIssue = &Issue{
		id: ConfigParseErrorId,
		mdMsg: `
# Metadata file is incomplete!

A required key is missing from an info.ini or the default selection file.

## Required keys:
- SDK bundles: ` + "`[SDK] name, version, toolchain`" + `
- Toolchain bundles: ` + "`[TOOLCHAIN] name, version`" + `
- Default selection: ` + "`[SDK] name`" + ` and ` + "`[TOOLCHAIN] name`" + `

## Example SDK info.ini:
~~~ini
[SDK]
name=iPhoneOS10.3
version=10.3
toolchain=ios-10
default_arch=arm64
iphoneos_deployment_target=10.3
~~~`,
	}

	pathInvalidIssue = &Issue{
		id: PathInvalidId,
		mdMsg: `
# SDK or toolchain directory missing!

Named SDKs resolve to ` + "`<root>/SDKs/<name>.sdk`" + ` and toolchains to
` + "`<root>/Toolchains/<name>.toolchain`" + `.

## Things you can try:
- List what is installed:
~~~
$ ls "$DEVELOPER_DIR/SDKs" "$DEVELOPER_DIR/Toolchains"
~~~

- Check SDKROOT and TOOLCHAINS for stale values
- Pass an absolute path to --sdk or --toolchain instead of a name`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The tool was not found in any directory of the search path.

## Things you can try:
- Show where the active SDK and toolchain live:
~~~
$ xcrun --show-sdk-path
$ xcrun --show-sdk-toolchain-path
~~~

- Trace the directories that were searched:
~~~
$ xcrun --verbose --find clang
~~~`,
	}

	execFailedIssue = &Issue{
		id: ExecFailedId,
		mdMsg: `
# Failed to execute the tool!

The tool was found but the operating system refused to run it.

## Things you can try:
- Check that the file is executable and built for this host
- Check the interpreter line of scripts
- Use --log to see the exact command line`,
	}

	targetTripleUnavailableIssue = &Issue{
		id: TargetTripleUnavailableId,
		mdMsg: `
# No target triple!

The SDK declares no deployment target or no default architecture.

## Things you can try:
- Set TARGET_TRIPLE explicitly:
~~~
$ TARGET_TRIPLE=arm64-apple-darwin16 xcrun clang -c main.c
~~~

- Add default_arch and a deployment target key to the SDK's info.ini`,
	}

	settingsLoadFailedIssue = &Issue{
		id: SettingsLoadFailedId,
		mdMsg: `
# Failed to load xcrun settings!

The settings file could not be read; built-in defaults are used.

## Things you can try:
- Check the CUE syntax of the settings file
- Allowed keys are verbose, log, defaults_file and developer_dir_cache`,
	}

	catalog = []*Issue{
		developerDirNotFoundIssue,
		configNotFoundIssue,
		configParseErrorIssue,
		pathInvalidIssue,
		commandNotFoundIssue,
		execFailedIssue,
		targetTripleUnavailableIssue,
		settingsLoadFailedIssue,
	}

	issues = func() map[Id]*Issue {
		m := make(map[Id]*Issue, len(catalog))
		for _, i := range catalog {
			m[i.Id()] = i
		}
		return m
	}()
)

// Values returns every issue in id order.
func Values() []*Issue {
	return slices.Clone(catalog)
}

func Get(id Id) *Issue {
	return issues[id]
}
