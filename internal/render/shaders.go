package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/pipeline"
	"scrollgl/internal/utils"
)

// textRevealFS masks glyph coverage with a soft edge that sweeps down the
// box as uProgress goes from 0 to 1, while the glyphs slide up into place.
const textRevealFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform float uProgress;
uniform float uHeight;
uniform vec3 uColor;

out vec4 finalColor;

void main() {
    float soft = 24.0;
    float fromTop = (1.0 - fragTexCoord.y) * uHeight;
    float edge = uProgress * (uHeight + soft * 2.0) - soft;
    float mask = smoothstep(edge + soft, edge - soft, fromTop);

    vec2 uv = fragTexCoord - vec2(0.0, (1.0 - uProgress) * 0.35);
    float coverage = texture(texture0, uv).a;
    if (uv.y < 0.0 || uv.y > 1.0) {
        coverage = 0.0;
    }

    finalColor = vec4(uColor, coverage * mask * fragColor.a);
}
`

// distortionFS splits the colour channels vertically by the smoothed scroll
// velocity and bends the image with a travelling sine wave.
const distortionFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D tDiffuse;
uniform float uTime;
uniform float uVelocity;

out vec4 finalColor;

void main() {
    vec2 uv = fragTexCoord;
    float strength = clamp(abs(uVelocity) * 0.004, 0.0, 0.06);
    uv.x += sin(uv.y * 12.0 + uTime * 3.0) * strength * 0.25;

    float shift = clamp(uVelocity * 0.0008, -0.04, 0.04);
    vec4 base = texture(tDiffuse, uv);
    vec4 red = texture(tDiffuse, uv + vec2(0.0, shift));
    vec4 blue = texture(tDiffuse, uv - vec2(0.0, shift));

    float alpha = max(base.a, max(red.a, blue.a));
    finalColor = vec4(red.r, base.g, blue.b, alpha);
}
`

const textRevealProgram = "text-reveal"

var fragmentSources = map[string]string{
	textRevealProgram:          textRevealFS,
	pipeline.DistortionProgram: distortionFS,
}

// program is a compiled fragment shader with its uniform locations.
type program struct {
	name   string
	shader rl.Shader
	locs   map[string]int32
}

// loadProgram compiles a fragment source against raylib's default vertex
// shader. A compile failure yields a zero shader, which callers skip.
func loadProgram(name string, uniforms ...string) *program {
	source, ok := fragmentSources[name]
	if !ok {
		utils.Error("Shader: unknown program %s", name)
		return &program{name: name}
	}

	var shader rl.Shader
	func() {
		defer func() {
			if r := recover(); r != nil {
				utils.Error("Shader: %s - compilation panic (skipping): %v", name, r)
				shader = rl.Shader{}
			}
		}()
		shader = rl.LoadShaderFromMemory("", source)
	}()

	p := &program{name: name, shader: shader, locs: make(map[string]int32, len(uniforms))}
	if shader.ID == 0 {
		utils.Warn("Shader: %s - failed to compile", name)
		return p
	}
	for _, u := range uniforms {
		p.locs[u] = rl.GetShaderLocation(shader, u)
	}
	utils.Info("Shader: %s - loaded (ID: %d)", name, shader.ID)
	return p
}

func (p *program) ok() bool { return p.shader.ID != 0 }

func (p *program) setFloat(name string, v float64) {
	if loc, ok := p.locs[name]; ok && loc != -1 {
		rl.SetShaderValue(p.shader, loc, []float32{float32(v)}, rl.ShaderUniformFloat)
	}
}

func (p *program) setVec3(name string, x, y, z float64) {
	if loc, ok := p.locs[name]; ok && loc != -1 {
		rl.SetShaderValue(p.shader, loc, []float32{float32(x), float32(y), float32(z)}, rl.ShaderUniformVec3)
	}
}

func (p *program) setTexture(name string, tex rl.Texture2D) {
	if loc, ok := p.locs[name]; ok && loc != -1 {
		rl.SetShaderValueTexture(p.shader, loc, tex)
	}
}

func (p *program) unload() {
	if p.ok() {
		rl.UnloadShader(p.shader)
		p.shader = rl.Shader{}
	}
}
