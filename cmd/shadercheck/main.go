// Command shadercheck validates the embedded terrain shader (or any WGSL file)
// and reports its reflected interface: entry points and resource bindings.
// It can also translate the shader through the naga backends.
//
// Usage:
//
//	shadercheck [options] [input.wgsl]
//
// Examples:
//
//	shadercheck                          # validate the embedded terrain shader
//	shadercheck -o terrain.spv           # emit SPIR-V
//	shadercheck -target msl              # print the MSL translation
//	shadercheck custom.wgsl              # validate another shader file
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"

	"terrainview/engine/shading"
)

var (
	output = flag.String("o", "", "SPIR-V output file")
	target = flag.String("target", "", "translation target to print: msl or glsl")
	quiet  = flag.Bool("quiet", false, "suppress the reflected interface listing")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	source := shading.Source
	name := "terrain.wgsl (embedded)"
	if args := flag.Args(); len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
		name = args[0]
	}

	module, err := compile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		report(name, module)
	}

	if *output != "" {
		spirvBytes, err := naga.Compile(source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "SPIR-V generation error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*output, spirvBytes, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", *output, len(spirvBytes))
	}

	switch *target {
	case "":
	case "msl":
		code, _, err := msl.Compile(module, msl.DefaultOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "MSL generation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(code)
	case "glsl":
		code, _, err := glsl.Compile(module, glsl.DefaultOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "GLSL generation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(code)
	default:
		fmt.Fprintf(os.Stderr, "Unknown target %q\n", *target)
		os.Exit(1)
	}
}

// compile runs the front half of the pipeline: parse, lower, validate.
func compile(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, err
	}
	validationErrors, err := naga.Validate(module)
	if err != nil {
		return nil, err
	}
	if len(validationErrors) > 0 {
		return nil, fmt.Errorf("validation failed: %w", &validationErrors[0])
	}
	return module, nil
}

// report prints the reflected entry points and resource bindings.
func report(name string, module *ir.Module) {
	fmt.Printf("%s: ok\n\nEntry points:\n", name)
	for _, ep := range module.EntryPoints {
		fmt.Printf("  %-10s %s\n", stageName(ep.Stage), ep.Name)
	}

	type binding struct {
		group, binding uint32
		name           string
	}
	var bindings []binding
	for _, gv := range module.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		bindings = append(bindings, binding{gv.Binding.Group, gv.Binding.Binding, gv.Name})
	}
	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].group != bindings[j].group {
			return bindings[i].group < bindings[j].group
		}
		return bindings[i].binding < bindings[j].binding
	})

	fmt.Printf("\nResource bindings:\n")
	for _, b := range bindings {
		fmt.Printf("  @group(%d) @binding(%d) %s\n", b.group, b.binding, b.name)
	}
}

func stageName(stage ir.ShaderStage) string {
	switch stage {
	case ir.StageVertex:
		return "vertex"
	case ir.StageFragment:
		return "fragment"
	case ir.StageCompute:
		return "compute"
	}
	return "unknown"
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shadercheck [options] [input.wgsl]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nWithout an input file, the embedded terrain shader is checked.\n")
}
