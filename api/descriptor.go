package api

// DescriptorType selects which fields of a DescriptorData record are live.
type DescriptorType int32

const (
	DescriptorTypeSampler DescriptorType = iota
	DescriptorTypeCombinedImageSampler
	DescriptorTypeSampledImage
	DescriptorTypeUniformBuffer
	DescriptorTypeStorageBuffer
)

// HasImage reports whether descriptors of this type reference an image.
func (t DescriptorType) HasImage() bool {
	return t == DescriptorTypeCombinedImageSampler || t == DescriptorTypeSampledImage
}

// HasSampler reports whether descriptors of this type reference a sampler.
func (t DescriptorType) HasSampler() bool {
	return t == DescriptorTypeSampler || t == DescriptorTypeCombinedImageSampler
}

// HasBuffer reports whether descriptors of this type reference a buffer.
func (t DescriptorType) HasBuffer() bool {
	return t == DescriptorTypeUniformBuffer || t == DescriptorTypeStorageBuffer
}

// DescriptorUpdateEntry describes one run of descriptors in an update
// template. The template's entries fix how a later opaque payload is
// interpreted, which is why the chassis caches the create info.
type DescriptorUpdateEntry struct {
	Binding      uint32
	ArrayElement uint32
	Count        uint32
	Type         DescriptorType
}

// DescriptorUpdateTemplateCreateInfo records the shape of template-driven
// descriptor updates.
type DescriptorUpdateTemplateCreateInfo struct {
	Next    Extension
	Layout  DescriptorSetLayout
	Entries []DescriptorUpdateEntry
}

// DescriptorData is one descriptor's worth of update payload. Which handle
// fields are meaningful depends on the entry's DescriptorType.
type DescriptorData struct {
	Buffer  Buffer
	Image   Image
	Sampler Sampler
	Offset  uint64
	Range   uint64
}
