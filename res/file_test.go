package res

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthArchive lays out a complete model archive: two models sharing one
// skeleton, a shaped and textured material, per-bone user data and one
// embedded external file.
func synthArchive() []byte {
	s := newSynth(2048)

	// archive header
	s.sig(0, "FRES")
	s.u32(4, 1)    // version
	s.u16(8, 8)    // alignment
	s.u16(10, 0)   // flags
	s.ptr(12, 1600) // name
	s.ptr(20, 64)  // models dict
	s.ptr(28, 144) // external files dict

	// models dict: alpha_model, beta_model
	s.dictHeader(64, 2)
	s.dictNode(64, 1, 1620, 256)
	s.dictNode(64, 2, 1640, 352)

	// external files dict: blob.bin
	s.dictHeader(144, 1)
	s.dictNode(144, 1, 1660, 208)
	s.ptr(208, 1900) // data
	s.u32(216, 4)    // size
	s.u32(220, 0)    // reserved

	// model A
	s.sig(256, "FMDL")
	s.u32(260, 0)    // flags
	s.ptr(264, 1680) // name
	s.ptr(272, 0)    // path absent
	s.ptr(280, 448)  // skeleton
	s.u16(288, 1)    // vertex buffer count
	s.ptr(292, 560)  // vertex buffers
	s.ptr(300, 688)  // shapes dict
	s.ptr(308, 832)  // materials dict
	s.ptr(316, 0)    // user data dict absent

	// model B shares model A's skeleton
	s.sig(352, "FMDL")
	s.u32(356, 0)
	s.ptr(360, 1700) // name
	s.ptr(368, 0)    // path absent
	s.ptr(376, 448)  // same skeleton offset as model A
	s.u16(384, 0)    // no vertex buffers
	s.ptr(388, 0)
	s.ptr(396, 0)
	s.ptr(404, 0)
	s.ptr(412, 0)

	// skeleton with two bones
	s.sig(448, "FSKL")
	s.u32(452, 0x11) // flags
	s.u16(456, 2)    // bone count
	s.ptr(460, 480)  // bones
	s.ptr(480, 1720) // bone 0 name
	s.u16(488, 0)    // index
	s.u16(490, BoneNoParent)
	s.u32(492, 0)   // flags
	s.ptr(496, 0)   // user data absent
	s.ptr(504, 1740) // bone 1 name
	s.u16(512, 1)
	s.u16(514, 0)    // parent is bone 0
	s.u32(516, 0)
	s.ptr(520, 1120) // bone 1 user data dict

	// vertex buffer with one attribute
	s.u32(560, 16)  // stride
	s.u32(564, 100) // vertex count
	s.u16(568, 1)   // attribute count
	s.ptr(572, 592) // attribute dict
	s.dictHeader(592, 1)
	s.dictNode(592, 1, 1880, 656)
	s.ptr(656, 1880) // attribute name
	s.u32(664, 0x0B) // format
	s.u16(668, 0)    // buffer index
	s.u16(670, 0)    // vertex offset

	// shapes dict: body
	s.dictHeader(688, 1)
	s.dictNode(688, 1, 1760, 752)
	s.sig(752, "FSHP")
	s.ptr(756, 1760) // name
	s.u32(764, 0)    // flags
	s.u16(768, 0)    // material index
	s.u16(770, 2)    // mesh count
	s.ptr(772, 784)  // meshes
	s.u32(784, 4)    // mesh 0: primitive type
	s.u32(788, 1)    // index format
	s.u32(792, 36)   // index count
	s.u32(796, 0)    // first vertex
	s.u32(800, 4)    // mesh 1
	s.u32(804, 1)
	s.u32(808, 12)
	s.u32(812, 100)

	// materials dict: skin
	s.dictHeader(832, 1)
	s.dictNode(832, 1, 1780, 896)
	s.sig(896, "FMAT")
	s.ptr(900, 1780) // name
	s.u32(908, 0)    // flags
	s.u16(912, 2)    // sampler count
	s.u16(914, 1)    // texture count
	s.ptr(916, 960)  // sampler name offsets
	s.ptr(924, 976)  // texture refs
	s.ptr(932, 1008) // render info dict
	s.ptr(940, 0)    // user data absent
	s.ptr(960, 1800) // sampler 0 name
	s.ptr(968, 0)    // sampler 1 absent
	s.ptr(976, 1820) // texture ref name
	s.u32(984, 2)    // dimension
	s.u32(988, 0)    // reserved

	// render info dict: blend
	s.dictHeader(1008, 1)
	s.dictNode(1008, 1, 1840, 1072)
	s.ptr(1072, 1840) // name
	s.u8(1080, 0)     // kind
	s.u16(1082, 2)    // value count
	s.ptr(1084, 1104) // values
	s.u32(1104, 1)
	s.u32(1108, 3)

	// bone 1 user data dict: lod
	s.dictHeader(1120, 1)
	s.dictNode(1120, 1, 1860, 1184)
	s.ptr(1184, 1860)         // name
	s.u8(1192, UserDataInt32) // kind
	s.u16(1194, 3)            // value count
	s.ptr(1196, 1216)         // values
	s.i32(1216, 1)
	s.i32(1220, 2)
	s.i32(1224, -3)

	// string pool
	s.str(1600, "archive")
	s.str(1620, "alpha_model")
	s.str(1640, "beta_model")
	s.str(1660, "blob.bin")
	s.str(1680, "ModelA")
	s.str(1700, "ModelB")
	s.str(1720, "root")
	s.str(1740, "spine")
	s.str(1760, "body")
	s.str(1780, "skin")
	s.str(1800, "albedo")
	s.str(1820, "skin_alb")
	s.str(1840, "blend")
	s.str(1860, "lod")
	s.str(1880, "a_pos")

	// external file payload
	copy(s.bytes()[1900:], []byte{0xDE, 0xAD, 0xBE, 0xEF})

	return s.bytes()
}

// synthShaderArchive lays out a shader binary with one program, two vertex
// attributes and one uniform block.
func synthShaderArchive() []byte {
	s := newSynth(512)

	s.sig(0, "BNSH")
	s.u32(4, 0x20)  // version
	s.ptr(8, 400)   // name
	s.ptr(16, 32)   // programs dict

	s.dictHeader(32, 1)
	s.dictNode(32, 1, 412, 96)

	// program "basic"
	s.ptr(96, 412)   // name
	s.u32(104, 0x3)  // stage mask
	s.u16(108, 2)    // attribute count
	s.u16(110, 1)    // uniform block count
	s.ptr(112, 424)  // attribute name 0
	s.ptr(120, 440)  // attribute name 1
	s.ptr(128, 144)  // uniform blocks

	// uniform block "MatrixBlock"
	s.ptr(144, 452) // name
	s.u8(152, 0)    // binding index
	s.u8(153, 1)    // type
	s.u16(154, 128) // byte size
	s.u16(156, 2)   // uniform count
	s.ptr(160, 176) // uniforms
	s.ptr(176, 468) // uniform 0 name
	s.u16(184, 0)   // index
	s.u16(186, 0)   // block offset
	s.ptr(192, 480) // uniform 1 name
	s.u16(200, 1)
	s.u16(202, 64)

	s.str(400, "shaders")
	s.str(412, "basic")
	s.str(424, "a_position")
	s.str(440, "a_normal")
	s.str(452, "MatrixBlock")
	s.str(468, "u_view")
	s.str(480, "u_proj")

	return s.bytes()
}

func TestOpenBytesModelArchive(t *testing.T) {
	f, err := OpenBytes(synthArchive())
	require.NoError(t, err)
	require.NotNil(t, f.Archive)
	assert.Nil(t, f.ShaderArchive)

	a := f.Archive
	assert.Equal(t, "archive", a.Name)
	assert.Equal(t, uint32(1), a.Version)
	assert.Equal(t, uint16(8), a.Alignment)

	require.Equal(t, 2, a.Models.Len())
	assert.Equal(t, []string{"alpha_model", "beta_model"}, a.Models.Keys())

	modelA, ok := a.Models.Get("alpha_model")
	require.True(t, ok)
	modelB, ok := a.Models.Get("beta_model")
	require.True(t, ok)
	assert.Equal(t, "ModelA", modelA.Name)
	assert.Equal(t, "", modelA.Path, "absent path decodes as empty")

	// both models reference the skeleton at one offset: one instance
	require.NotNil(t, modelA.Skeleton)
	assert.Same(t, modelA.Skeleton, modelB.Skeleton)

	bones := modelA.Skeleton.Bones
	require.Len(t, bones, 2)
	assert.Equal(t, "root", bones[0].Name)
	assert.Equal(t, uint16(BoneNoParent), bones[0].ParentIndex)
	assert.Equal(t, "spine", bones[1].Name)
	require.Equal(t, 1, bones[1].UserData.Len())
	lod, ok := bones[1].UserData.Get("lod")
	require.True(t, ok)
	assert.Equal(t, uint8(UserDataInt32), lod.Kind)
	assert.Equal(t, []int32{1, 2, -3}, lod.Ints)

	require.Len(t, modelA.VertexBuffers, 1)
	vb := modelA.VertexBuffers[0]
	assert.Equal(t, uint32(16), vb.Stride)
	assert.Equal(t, uint32(100), vb.VertexCount)
	require.Equal(t, 1, vb.Attributes.Len())
	pos, ok := vb.Attributes.Get("a_pos")
	require.True(t, ok)
	assert.Equal(t, uint32(0x0B), pos.Format)

	require.Equal(t, 1, modelA.Shapes.Len())
	body, ok := modelA.Shapes.Get("body")
	require.True(t, ok)
	require.Len(t, body.Meshes, 2)
	assert.Equal(t, uint32(36), body.Meshes[0].IndexCount)
	assert.Equal(t, uint32(12), body.Meshes[1].IndexCount)
	assert.Equal(t, uint32(100), body.Meshes[1].FirstVertex)

	require.Equal(t, 1, modelA.Materials.Len())
	skin, ok := modelA.Materials.Get("skin")
	require.True(t, ok)
	require.Len(t, skin.SamplerNames, 2)
	require.NotNil(t, skin.SamplerNames[0])
	assert.Equal(t, "albedo", *skin.SamplerNames[0])
	assert.Nil(t, skin.SamplerNames[1], "zero offset leaves the slot absent")
	require.Len(t, skin.TextureRefs, 1)
	assert.Equal(t, "skin_alb", skin.TextureRefs[0].Name)
	assert.Equal(t, uint32(2), skin.TextureRefs[0].Dimension)
	require.Equal(t, 1, skin.RenderInfo.Len())
	blend, ok := skin.RenderInfo.Get("blend")
	require.True(t, ok)
	assert.Equal(t, []uint32{1, 3}, blend.Values)

	// absent dictionaries come back empty, never nil
	require.NotNil(t, modelA.UserData)
	assert.Equal(t, 0, modelA.UserData.Len())
	require.NotNil(t, modelB.Shapes)
	assert.Equal(t, 0, modelB.Shapes.Len())

	require.Equal(t, 1, a.ExternalFiles.Len())
	blob, ok := a.ExternalFiles.Get("blob.bin")
	require.True(t, ok)
	assert.Equal(t, uint32(4), blob.Size)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, blob.Data)
}

func TestOpenBytesShaderArchive(t *testing.T) {
	f, err := OpenBytes(synthShaderArchive())
	require.NoError(t, err)
	require.NotNil(t, f.ShaderArchive)
	assert.Nil(t, f.Archive)

	sa := f.ShaderArchive
	assert.Equal(t, "shaders", sa.Name)
	assert.Equal(t, uint32(0x20), sa.Version)

	require.Equal(t, 1, sa.Programs.Len())
	basic, ok := sa.Programs.Get("basic")
	require.True(t, ok)
	assert.Equal(t, uint32(0x3), basic.StageMask)
	require.Len(t, basic.AttribNames, 2)
	assert.Equal(t, "a_position", *basic.AttribNames[0])
	assert.Equal(t, "a_normal", *basic.AttribNames[1])

	require.Len(t, basic.Blocks, 1)
	mb := basic.Blocks[0]
	assert.Equal(t, "MatrixBlock", mb.Name)
	assert.Equal(t, uint16(128), mb.Size)
	require.Len(t, mb.Uniforms, 2)
	assert.Equal(t, "u_view", mb.Uniforms[0].Name)
	assert.Equal(t, "u_proj", mb.Uniforms[1].Name)
	assert.Equal(t, uint16(64), mb.Uniforms[1].BlockOffset)
}

func TestOpenBytesRejectsUnknownSignature(t *testing.T) {
	_, err := OpenBytes([]byte("NOPE----"))
	require.Error(t, err)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "NOPE", fe.Actual)
	assert.Equal(t, "FRES|BNSH", fe.Expected)
	assert.True(t, errors.Is(err, ErrSignatureMismatch))
}

func TestOpenBytesRejectsShortStream(t *testing.T) {
	_, err := OpenBytes([]byte{1, 2})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestOpenBytesCorruptNestedSignature(t *testing.T) {
	blob := synthArchive()
	copy(blob[448:], "XSKL") // break the shared skeleton's magic
	_, err := OpenBytes(blob)
	require.Error(t, err)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "FSKL", fe.Expected)
	assert.Equal(t, "XSKL", fe.Actual)
}

func TestOpenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bfres")
	require.NoError(t, os.WriteFile(path, synthArchive(), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, int64(2048), f.Size())
	require.NotNil(t, f.Archive)
	assert.Equal(t, "archive", f.Archive.Name)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close(), "double close is a no-op")
}
