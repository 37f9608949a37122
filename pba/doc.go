// Package pba reads and writes physics skeleton assets stored in BINA
// containers.
//
// An asset is a header followed by fixed-size rigid body and constraint
// tables and a list of soft bodies, each owning cloth nodes and links:
//
//	asset := pba.NewAsset("Skeleton")
//	asset.RigidBodies = append(asset.RigidBodies, pba.NewRigidBody("Hips"))
//	if err := asset.WriteFile("skeleton.pba"); err != nil {
//	    return err
//	}
//
//	decoded, err := pba.ReadFile("skeleton.pba")
//
// Records use fixed little-endian layouts. Decoding walks the tables by their
// fixed strides and does not consult the container's offset table.
package pba
