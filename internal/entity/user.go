package entity

import "github.com/danishayman/bobo-game-awards-sub000/pkg/enum"

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"), "super_admin")
	RoleAdmin      = enum.New(GlobalRole("admin"), "admin")
	RoleUser       = enum.New(GlobalRole("user"), "user")
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base
	Name      string
	Email     string
	AvatarURL string
	Role      GlobalRole
}
