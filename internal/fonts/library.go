package fonts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"scrollgl/internal/utils"
)

var embedded = map[string][]byte{
	GoRegular: goregular.TTF,
	GoMedium:  gomedium.TTF,
	GoBold:    gobold.TTF,
}

// Loaded is a parsed font with the raw bytes kept for GPU atlas builds.
type Loaded struct {
	Resource string
	Data     []byte
	Font     *opentype.Font
}

type faceKey struct {
	resource string
	size     float64
}

// Library parses every resource of a Map in the background. Ready is the
// startup gate: nothing should measure or draw text before it returns.
type Library struct {
	fonts Map

	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	byRes map[string]*Loaded
	faces map[faceKey]font.Face
}

func NewLibrary(m Map) *Library {
	return &Library{
		fonts: m,
		done:  make(chan struct{}),
		byRes: make(map[string]*Loaded),
		faces: make(map[faceKey]font.Face),
	}
}

// Map returns the weight table the library was built from.
func (l *Library) Map() Map { return l.fonts }

// Load starts parsing in the background. Calling it again is a no-op.
func (l *Library) Load() {
	l.once.Do(func() {
		go l.loadAll()
	})
}

// Ready starts loading if needed and blocks until every font is parsed or ctx ends.
func (l *Library) Ready(ctx context.Context) error {
	l.Load()
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for fonts: %w", ctx.Err())
	}
}

func (l *Library) loadAll() {
	defer close(l.done)

	var wg sync.WaitGroup
	for _, resource := range append(l.fonts.Resources(), GoRegular) {
		wg.Add(1)
		go func(resource string) {
			defer wg.Done()

			loaded, err := load(resource)
			if err != nil {
				utils.Warn("Fonts: %v, using %s instead", err, GoRegular)
				loaded, _ = load(GoRegular)
				loaded.Resource = resource
			}

			l.mu.Lock()
			l.byRes[resource] = loaded
			l.mu.Unlock()
			utils.Debug("Fonts: loaded %s (%d bytes)", resource, len(loaded.Data))
		}(resource)
	}
	wg.Wait()
}

func load(resource string) (*Loaded, error) {
	data, ok := embedded[resource]
	if !ok {
		if strings.HasPrefix(resource, "gofont:") {
			return nil, fmt.Errorf("unknown embedded font %q", resource)
		}
		var path string
		var err error
		data, path, err = utils.ReadAsset(resource)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", resource, err)
	}
	return &Loaded{Resource: resource, Data: data, Font: parsed}, nil
}

// Get returns the parsed font for resource, falling back to the default
// weight's font and finally the embedded regular face.
func (l *Library) Get(resource string) *Loaded {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.byRes[resource]; ok {
		return f
	}
	if f, ok := l.byRes[l.fonts[DefaultWeight]]; ok {
		return f
	}
	if f, ok := l.byRes[GoRegular]; ok {
		return f
	}

	// Not loaded yet; parse the embedded fallback synchronously.
	f, _ := load(GoRegular)
	l.byRes[GoRegular] = f
	return f
}

// Face returns a cached face of resource at size pixels.
func (l *Library) Face(resource string, size float64) font.Face {
	if size <= 0 {
		size = 16
	}
	key := faceKey{resource: resource, size: size}

	l.mu.Lock()
	if face, ok := l.faces[key]; ok {
		l.mu.Unlock()
		return face
	}
	l.mu.Unlock()

	loaded := l.Get(resource)
	face, err := opentype.NewFace(loaded.Font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		utils.Error("Fonts: creating face %s@%.1f: %v", resource, size, err)
		return nil
	}

	l.mu.Lock()
	l.faces[key] = face
	l.mu.Unlock()
	return face
}
