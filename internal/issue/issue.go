// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ToolNotFoundId Id = iota + 1
	InvalidParameterId
	DanglingReferenceId
	MissingMarkerId
	ExternalToolFailedId
	MissingArtifactId
	ConfigLoadFailedId
	NoOperationRequestedId
	ContainerEngineNotFoundId
	InvalidCatalogId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // vendor documentation relevant to the issue
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

// Render renders the guide with the given glamour style ("auto", "dark",
// "light", "notty" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

const ug1118 HttpLink = "https://docs.amd.com/r/en-US/ug1118-vivado-creating-packaging-custom-ip"

var (
	render = glamour.Render

	toolNotFoundIssue = &Issue{
		id:       ToolNotFoundId,
		docLinks: []HttpLink{ug1118},
		mdMsg: `
# Vivado not found!

The packaging tool could not be found on this system.

## Things you can try:
- Source the Vivado settings script so ` + "`vivado`" + ` is on your PATH:
~~~
$ source /opt/Xilinx/Vivado/2023.2/settings64.sh
~~~

- Point axiconv at the binary in your config.cue:
~~~cue
vivado: binary: "/opt/Xilinx/Vivado/2023.2/bin/vivado"
~~~

- Run the tool from a container image instead:
~~~cue
vivado: {
	runtime: "container"
	image:   "registry.example.com/vivado:2023.2"
}
~~~`,
	}

	invalidParameterIssue = &Issue{
		id: InvalidParameterId,
		mdMsg: `
# Invalid build parameter!

The converter cannot be built with the requested widths.

## Rules:
- ` + "`--address-width`" + `, ` + "`--input-width`" + ` and ` + "`--output-width`" + ` must be positive
- ` + "`--input-width`" + ` and ` + "`--output-width`" + ` must be multiples of 8 bits
- ` + "`--user-width`" + ` may be 0 (no TUSER) but not negative

## Example:
~~~
$ axiconv --input-width 128 --output-width 64 --build --package
~~~`,
	}

	danglingReferenceIssue = &Issue{
		id: DanglingReferenceId,
		mdMsg: `
# Interface catalog references an undeclared name!

A clock domain names a bus interface, or a GUI group names a parameter,
that the core does not declare. No script was written.

This is a defect in the interface catalog, not in your input.`,
	}

	missingMarkerIssue = &Issue{
		id: MissingMarkerId,
		mdMsg: `
# Netlist has no port list!

The generated netlist has no line closing the module port list (` + "`);`" + `),
so build parameters cannot be declared.

## Things you can try:
- Check that the elaboration step produced a Verilog netlist
- Re-run the build:
~~~
$ axiconv --build
~~~`,
	}

	externalToolFailedIssue = &Issue{
		id:       ExternalToolFailedId,
		docLinks: []HttpLink{ug1118},
		mdMsg: `
# Vivado exited with an error!

The package directory has been kept so you can inspect it.

## Things you can try:
- Read ` + "`vivado.log`" + ` in the package directory
- Re-run the generated script interactively:
~~~
$ cd build/package_<build>
$ vivado -mode tcl -source packager.tcl
~~~

- Make sure custom interfaces exist before packaging:
~~~
$ axiconv --interface --package
~~~`,
	}

	missingArtifactIssue = &Issue{
		id: MissingArtifactId,
		mdMsg: `
# Build artifact missing!

A file the requested stage depends on does not exist.

## Things you can try:
- Run the stages it depends on first:
~~~
$ axiconv --build --package --project
~~~

- Configure the elaboration command in config.cue:
~~~cue
elaborate: {
	command:   "python3 axi_converter.py --build"
	build_dir: "build/gateware"
}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ axiconv config show
~~~

- Start over from the defaults:
~~~
$ axiconv config init --force
~~~`,
	}

	noOperationRequestedIssue = &Issue{
		id: NoOperationRequestedId,
		mdMsg: `
# Nothing to do!

No stage was requested, so nothing was built.

## Stages:
- ` + "`--build`" + `: elaborate the netlist and constraints
- ` + "`--interface`" + `: create the custom bus definitions
- ` + "`--package`" + `: package the core into the IP catalog
- ` + "`--project`" + `: create a demo block design using the packaged core`,
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# No container engine available!

The container runtime needs Podman or Docker.

## Things you can try:
- Install podman or docker and make sure the daemon, if any, is running
- Switch back to the host installation:
~~~cue
vivado: runtime: "native"
~~~`,
	}

	invalidCatalogIssue = &Issue{
		id: InvalidCatalogId,
		mdMsg: `
# The interface catalog is inconsistent!

One or more bus, clock, interrupt or GUI entries are malformed, so no
packaging script was generated.

## Things you can try:
- Give every port a positive width and a physical name used by one bus only
- Give every clock domain a clock signal and list each bus once
- Check that the netlist ports match the widths chosen on the command line
~~~
$ axiconv --build --package --input-width 128 --output-width 64
~~~`,
	}

	issues = []*Issue{
		toolNotFoundIssue,
		invalidParameterIssue,
		danglingReferenceIssue,
		missingMarkerIssue,
		externalToolFailedIssue,
		missingArtifactIssue,
		configLoadFailedIssue,
		noOperationRequestedIssue,
		containerEngineNotFoundIssue,
		invalidCatalogIssue,
	}
)

// Values returns every issue guide ordered by id.
func Values() []*Issue {
	out := slices.Clone(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the guide for id, or nil.
func Get(id Id) *Issue {
	i := slices.IndexFunc(issues, func(is *Issue) bool { return is.id == id })
	if i < 0 {
		return nil
	}
	return issues[i]
}
