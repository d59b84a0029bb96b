// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package material

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/gogpu/naga"
)

// Embedded WGSL template of the generic soft-maskable shader.
//
//go:embed shaders/softmaskable.wgsl
var softMaskableShaderSource string

// defaultTemplate is the parsed generic soft-maskable shader.
var defaultTemplate = template.Must(template.New("softmaskable").Parse(softMaskableShaderSource))

// maskChannels names the soft mask buffer channel of each nesting level.
var maskChannels = [MaxDepth]string{"r", "g", "b", "a"}

// shaderParams are the values a masked shader template is expanded with.
type shaderParams struct {
	// Base is the name of the base shader.
	Base string
	// Depth is the soft mask nesting depth (0-based).
	Depth int
	// Stereo selects the side-by-side mask lookup.
	Stereo bool
	// Levels are the channels multiplied into the mask value after "r".
	Levels []string
}

// ParseShader parses a masked shader template. Templates are expanded
// with the fields Base, Depth, Stereo and Levels.
func ParseShader(name, source string) (*template.Template, error) {
	t, err := template.New(name).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("material: parse shader %q: %w", name, err)
	}
	return t, nil
}

// generateShader expands t for a variant at depth.
func generateShader(t *template.Template, base string, depth int, stereo bool) (string, error) {
	if depth < 0 || depth >= MaxDepth {
		return "", ErrDepthOutOfRange
	}
	params := shaderParams{
		Base:   base,
		Depth:  depth,
		Stereo: stereo,
		Levels: maskChannels[1 : depth+1],
	}
	var sb strings.Builder
	if err := t.Execute(&sb, params); err != nil {
		return "", fmt.Errorf("material: generate shader for %q: %w", base, err)
	}
	return sb.String(), nil
}

// CompileShaderToSPIRV compiles WGSL source to SPIR-V uint32 slice.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	// Compile WGSL to SPIR-V bytes
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("material: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
