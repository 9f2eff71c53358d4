package swap

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/gconf"
)

const (
	// DefaultMaxAssets is used when no configuration was stored.
	DefaultMaxAssets = 64

	packageName = "swap"
)

// Configuration holds the on-chain settings of this extension.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// MaxAssets limits the number of assets a single swap may reference.
	MaxAssets uint32 `protobuf:"varint,2,opt,name=max_assets,json=maxAssets,proto3" json:"max_assets,omitempty"`
}

type configurationWire Configuration

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationWire)(c))
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*configurationWire)(c))
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if c.MaxAssets == 0 {
		errs = errors.Append(errs,
			errors.Field("MaxAssets", errors.ErrInput, "must be greater than zero"))
	}
	return errs
}

// DefaultConfiguration is used until a configuration is stored.
func DefaultConfiguration() Configuration {
	return Configuration{
		Metadata:  &weave.Metadata{Schema: 1},
		MaxAssets: DefaultMaxAssets,
	}
}

// LoadConfiguration returns the stored configuration or the default one if
// none was stored.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		def := DefaultConfiguration()
		return &def, nil
	default:
		return nil, err
	}
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, packageName, conf)
}

// Initializer loads the configuration from the genesis file. A genesis
// without a swap configuration keeps the defaults.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, packageName, &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
